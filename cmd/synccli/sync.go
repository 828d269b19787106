package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"text/tabwriter"
	"time"

	"mirror/internal/client/deltasync"
	"mirror/internal/client/push"
	"mirror/internal/domain/entity"
	"mirror/internal/errors"
	"mirror/internal/util"

	"github.com/spf13/cobra"
)

// engine is the untyped surface of deltasync.Engine used by commands.
type engine interface {
	DataType() entity.DataType
	GetStats(ctx context.Context) (deltasync.Stats, error)
	ClearCache(ctx context.Context) error
}

func (a *app) engine(dataType entity.DataType) (engine, error) {
	switch dataType {
	case entity.DataTypeMessages:
		return deltasync.New[entity.Message](a.api, a.store, a.cfg.Sync, a.logger), nil
	case entity.DataTypeContacts:
		return deltasync.New[entity.Contact](a.api, a.store, a.cfg.Sync, a.logger), nil
	case entity.DataTypeCalls:
		return deltasync.New[entity.Call](a.api, a.store, a.cfg.Sync, a.logger), nil
	default:
		return nil, errors.Wrapf(entity.ErrUnknownDataType, "%q", dataType)
	}
}

// printer serializes output lines from concurrent streams.
type printer struct {
	mu  sync.Mutex
	out io.Writer
}

func (p *printer) line(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, format+"\n", args...)
}

func printDelta[T entity.Payload](p *printer, dataType entity.DataType, delta entity.ChangeDelta[T]) {
	if delta.Record == nil {
		p.line("%s\t%s\t%s", dataType, delta.Kind, delta.RecordID)

		return
	}

	payload, err := json.Marshal(delta.Record.Payload)
	if err != nil {
		payload = []byte(`"<unprintable>"`)
	}
	p.line("%s\t%s\t%s\t%s\t%s", dataType, delta.Kind, delta.RecordID, util.FormatWatermark(delta.Record.Date), payload)
}

// attach wires one typed engine to the push router and prints its stream.
func attach[T entity.Payload](ctx context.Context, a *app, router *push.Router, p *printer, wg *sync.WaitGroup) error {
	e := deltasync.New[T](a.api, a.store, a.cfg.Sync, a.logger)
	push.Register[T](router, e)

	deltas, err := e.StreamDeltas(ctx)
	if err != nil {
		return err
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for delta := range deltas {
			printDelta(p, e.DataType(), delta)
		}
	}()

	return nil
}

func (a *app) attach(ctx context.Context, dataType entity.DataType, router *push.Router, p *printer, wg *sync.WaitGroup) error {
	switch dataType {
	case entity.DataTypeMessages:
		return attach[entity.Message](ctx, a, router, p, wg)
	case entity.DataTypeContacts:
		return attach[entity.Contact](ctx, a, router, p, wg)
	case entity.DataTypeCalls:
		return attach[entity.Call](ctx, a, router, p, wg)
	default:
		return errors.Wrapf(entity.ErrUnknownDataType, "%q", dataType)
	}
}

func newStreamCmd(a *app) *cobra.Command {
	var noPush bool

	cmd := &cobra.Command{
		Use:     "stream [dataType...]",
		GroupID: "sync",
		Short:   "Catch up, then print changes as they arrive until interrupted",
		Long: `Catch up every requested data type from its saved cursor, then keep
polling and listen on the change bus. Each change prints as one line:

  <dataType> <kind> <recordId> [<date> <payload>]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataTypes, err := parseDataTypes(args)
			if err != nil {
				return err
			}
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			p := &printer{out: cmd.OutOrStdout()}
			router := push.NewRouter()
			var wg sync.WaitGroup
			for _, dataType := range dataTypes {
				if err := a.attach(ctx, dataType, router, p, &wg); err != nil {
					return err
				}
			}

			if !noPush {
				bus := push.NewClient(a.api.BusEndpoint, router, a.cfg.Bus, a.logger)
				bus.On(push.EventState, func(n push.Notice) {
					a.logger.Info("Change bus state changed", slog.String("state", string(n.State)))
				})
				for _, dataType := range dataTypes {
					if err := bus.Subscribe(ctx, dataType); err != nil {
						return err
					}
				}
				if err := bus.Start(ctx); err != nil {
					return err
				}
				defer bus.Close()
			}

			<-ctx.Done()
			cancel()
			wg.Wait()

			return nil
		},
	}

	cmd.Flags().BoolVar(&noPush, "no-push", false, "poll only, without the change bus")

	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "stats [dataType...]",
		GroupID: "sync",
		Short:   "Show cursor and cache diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataTypes, err := parseDataTypes(args)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tCACHED\tSAVED\tWATERMARK\tLAST ID\tLAST SYNCED\t")
			now := time.Now()
			for _, dataType := range dataTypes {
				e, err := a.engine(dataType)
				if err != nil {
					return err
				}
				stats, err := e.GetStats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t\n",
					stats.DataType,
					stats.CachedCount,
					util.FormatBytes(stats.EstimatedBandwidthSaved),
					util.FormatWatermark(stats.LastSyncTimestamp),
					stats.LastRecordID,
					util.FormatLastSynced(stats.LastSyncedAt, now),
				)
			}

			return w.Flush()
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "clear <dataType>",
		GroupID: "sync",
		Short:   "Drop the local cache and cursor of a data type; the next sync starts over",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataTypes, err := parseDataTypes(args)
			if err != nil {
				return err
			}
			e, err := a.engine(dataTypes[0])
			if err != nil {
				return err
			}
			if err := e.ClearCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", dataTypes[0])

			return nil
		},
	}
}

func newPutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "put <dataType> <record-json>",
		GroupID: "sync",
		Short:   `Upsert a record, e.g. put calls '{"id":"c1","date":1700000000000,"payload":{...}}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataTypes, err := parseDataTypes(args[:1])
			if err != nil {
				return err
			}

			var record entity.RawRecord
			if err := json.Unmarshal([]byte(args[1]), &record); err != nil {
				return errors.Wrap(err, "record must be a JSON object with id, date and payload")
			}
			if record.Date == 0 {
				record.Date = time.Now().UnixMilli()
			}
			if err := entity.ValidateRawRecord(dataTypes[0], record); err != nil {
				return err
			}

			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			kind, err := a.api.PutRecord(cmd.Context(), dataTypes[0], record)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", kind, record.ID)

			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <dataType> <recordId>",
		GroupID: "sync",
		Short:   "Delete a record; other devices learn of it over the change bus",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataTypes, err := parseDataTypes(args[:1])
			if err != nil {
				return err
			}
			if _, err := a.requirePaired(cmd.Context()); err != nil {
				return err
			}
			if err := a.api.DeleteRecord(cmd.Context(), dataTypes[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[1])

			return nil
		},
	}
}
