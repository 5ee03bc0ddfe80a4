package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newLanesCmd() *cobra.Command {
	var allFlag bool

	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "List the lanes of the selected account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			acct, err := env.resolveAccount(cmd.Context())
			if err != nil {
				return err
			}

			lanes := acct.DisplayedLanes()
			if allFlag {
				lanes = acct.Lanes()
			}

			if jsonFlag {
				return printJSON(toJSONLanes(lanes))
			}

			current := acct.InitialLaneIndex()
			tbl := newTable(os.Stdout, "", "#", "TITLE", "TYPE", "CONTENT", "SHOWN")
			pos := 0
			for _, l := range lanes {
				index, marker := "-", ""
				if l.Display {
					index = strconv.Itoa(pos)
					if pos == current {
						marker = ">"
					}
					pos++
				}
				tbl.row(marker, index, l.Title, string(l.Type), l.Content.String(), yesNo(l.Display))
			}
			return tbl.flush()
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "include hidden lanes")
	cmd.AddCommand(newLaneDisplayCmd("show", "Show a hidden lane", true))
	cmd.AddCommand(newLaneDisplayCmd("hide", "Hide a lane", false))
	cmd.AddCommand(newLaneCurrentCmd())
	return cmd
}

func newLaneDisplayCmd(name, short string, display bool) *cobra.Command {
	var listFlag int64

	cmd := &cobra.Command{
		Use:   name + " [title]",
		Short: short,
		Long:  short + ". Use --list to pick a list lane by list id when its name is shared with another lane.",
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("list") {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			acct, err := env.resolveAccount(ctx)
			if err != nil {
				return err
			}

			var lane string
			if cmd.Flags().Changed("list") {
				lane = strconv.FormatInt(listFlag, 10)
				err = env.svc.SetListLaneDisplayed(ctx, acct, listFlag, display)
			} else {
				lane = args[0]
				err = env.svc.SetLaneDisplayed(ctx, acct, lane, display)
			}
			if err != nil {
				return err
			}

			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: name, Account: acct.ScreenName(), Lane: lane})
			}
			state := "hidden"
			if display {
				state = "shown"
			}
			fmt.Printf("Lane %q: %s\n", lane, state)
			return nil
		},
	}
	cmd.Flags().Int64Var(&listFlag, "list", 0, "list id of the lane to "+name)
	return cmd
}

func newLaneCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current [index]",
		Short: "Set the lane termlanes opens on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid lane index: %s", args[0])
			}

			env, err := openEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := cmd.Context()
			acct, err := env.resolveAccount(ctx)
			if err != nil {
				return err
			}
			if err := env.svc.SetCurrentLane(ctx, acct, index); err != nil {
				return err
			}

			lane, _ := acct.DisplayedLane(index)
			if jsonFlag {
				return printJSON(jsonAction{OK: true, Action: "current", Account: acct.ScreenName(), Lane: lane.Title})
			}
			fmt.Printf("Current lane: %s\n", lane.Title)
			return nil
		},
	}
}
