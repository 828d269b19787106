package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"mirror/internal/delivery/api/dto"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"
	"mirror/internal/util"

	"github.com/spf13/cobra"
)

func printPairing(cmd *cobra.Command, verb string, resp *dto.PairingResponse) {
	limit := "unlimited"
	if resp.DeviceLimit != entity.UnlimitedDevices {
		limit = strconv.Itoa(resp.DeviceLimit)
	}
	if resp.Rejoined {
		verb = "Rejoined"
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s group %s (%d of %s devices)\n", verb, resp.GroupID, resp.DeviceCount, limit)
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "create",
		GroupID: "pairing",
		Short:   "Create a sync group with this device as master",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.pairing.CreateGroup(cmd.Context(), a.profile())
			if err != nil {
				return err
			}
			printPairing(cmd, "Created", resp)

			return nil
		},
	}
}

func newJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "join <groupId>",
		GroupID: "pairing",
		Short:   "Join an existing sync group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.pairing.JoinGroup(cmd.Context(), args[0], a.profile())
			if err != nil {
				return err
			}
			printPairing(cmd, "Joined", resp)

			return nil
		},
	}
}

func newRecoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "recover",
		GroupID: "pairing",
		Short:   "Find the group this device belonged to after losing local state",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.pairing.RecoverGroup(cmd.Context(), a.profile())
			if err != nil {
				return err
			}
			printPairing(cmd, "Recovered", resp)

			return nil
		},
	}
}

func newLeaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "leave",
		GroupID: "pairing",
		Short:   "Leave the sync group and drop all local data",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			if err := a.pairing.LeaveGroup(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Left the sync group")

			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <deviceId>",
		GroupID: "pairing",
		Short:   "Remove another device from the group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			if err := a.pairing.RemoveDevice(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])

			return nil
		},
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		GroupID: "pairing",
		Short:   "Show the group and its devices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			info, err := a.pairing.GroupInfo(cmd.Context())
			if err != nil {
				return err
			}
			self, err := a.pairing.DeviceID(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			limit := "unlimited"
			if info.DeviceLimit != entity.UnlimitedDevices {
				limit = strconv.Itoa(info.DeviceLimit)
			}
			fmt.Fprintf(out, "Group:   %s\nPlan:    %s\nDevices: %d of %s\n\n", info.GroupID, info.Plan, info.DeviceCount, limit)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DEVICE\tTYPE\tNAME\tJOINED\tLAST SYNCED\t")
			now := time.Now()
			for _, device := range info.Devices {
				marker := ""
				switch device.DeviceID {
				case self:
					marker = " (this device)"
				case info.MasterDeviceID:
					marker = " (master)"
				}
				fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%s\t\n",
					device.DeviceID, marker, device.DeviceType, device.DeviceName,
					device.JoinedAt.Format(time.DateOnly), util.FormatLastSynced(device.LastSyncedAt, now))
			}

			return w.Flush()
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "history",
		GroupID: "pairing",
		Short:   "Show join, rejoin and removal events of the group",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			events, err := a.api.GroupHistory(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tACTION\tDEVICE\tNAME\t")
			for _, event := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
					event.Timestamp.Format(time.RFC3339), event.Action, event.DeviceID, event.DeviceName)
			}

			return w.Flush()
		},
	}
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "plan <free|paid>",
		GroupID:   "pairing",
		Short:     "Change the group's plan (master device only)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(entity.PlanFree), string(entity.PlanPaid)},
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := entity.Plan(args[0])
			if !plan.IsValid() {
				return errors.Errorf("unknown plan %q", args[0])
			}
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			info, err := a.api.UpdatePlan(cmd.Context(), plan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Group %s is now on the %s plan\n", info.GroupID, info.Plan)

			return nil
		},
	}
}

func newQRCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "qr <file.png>",
		GroupID: "pairing",
		Short:   "Write the group's pairing QR code to a PNG file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			png, err := a.api.PairingQR(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], png, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", args[0], util.FormatBytes(int64(len(png))))

			return nil
		},
	}
}
