package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NethermindEth/l1sender/core"
	"github.com/NethermindEth/l1sender/db"
	"github.com/NethermindEth/l1sender/db/pebble"
	"github.com/NethermindEth/l1sender/storage"
	"github.com/NethermindEth/l1sender/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const (
	actionF = "action"
	firstF  = "first"
	lastF   = "last"
	dataF   = "data"
)

func StatusCmd(defaultDBPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the sender state stored in the database",
		Long: `This subcommand displays the persisted parameters, progress, unconfirmed operations
and queued operations. It must not run against the database of a running sender.`,
		RunE: status,
	}
	cmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	return cmd
}

func EnqueueCmd(defaultDBPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue an aggregated operation for sending",
		Long: `This subcommand adds an aggregated operation to the queue the sender admits from.
It must not run against the database of a running sender.`,
		RunE: enqueue,
	}
	cmd.Flags().String(dbPathF, defaultDBPath, dbPathUsage)
	cmd.Flags().String(actionF, "", "Action of the operation. Options: commit, verify, execute.")
	cmd.Flags().Uint64(firstF, 0, "First rollup block covered by the operation.")
	cmd.Flags().Uint64(lastF, 0, "Last rollup block covered by the operation.")
	cmd.Flags().String(dataF, "", "Hex encoded call data of the operation.")
	return cmd
}

func status(cmd *cobra.Command, _ []string) error {
	dbPath, err := cmd.Flags().GetString(dbPathF)
	if err != nil {
		return err
	}

	database, err := openDB(dbPath, false)
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := storage.New(database, new(core.Parameters))
	if err != nil {
		return err
	}

	params, err := store.LoadParameters()
	if err != nil {
		return err
	}
	unconfirmed, err := store.LoadUnconfirmedOperations()
	if err != nil {
		return err
	}
	pending, err := store.LoadPendingOperations()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printParameters(out, params)
	printUnconfirmed(out, unconfirmed)
	printPending(out, pending)
	return nil
}

func printParameters(out io.Writer, params *core.Parameters) {
	average := "-"
	if params.AverageGasPrice != nil {
		average = params.AverageGasPrice.Dec()
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Parameter", "Value"})
	table.Append([]string{"Next nonce", strconv.FormatUint(params.Nonce, 10)})
	table.Append([]string{"Gas price limit", params.GasPriceLimit.Dec()})
	table.Append([]string{"Average gas price", average})
	for _, action := range []core.ActionType{core.Commit, core.Verify, core.Execute} {
		table.Append([]string{
			"Last " + action.String() + " block",
			strconv.FormatUint(params.Progress.Stats.LastBlock(action), 10),
		})
	}
	table.Append([]string{"Deferred confirmations", strconv.Itoa(len(params.Progress.Deferred))})
	table.Render()
}

func printUnconfirmed(out io.Writer, ops []*core.Operation) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Action", "Blocks", "Nonce", "Gas price", "Deadline", "Submissions", "Last hash"})
	for _, op := range ops {
		lastHash := "-"
		if hash, ok := op.LastHash(); ok {
			lastHash = hash.Hex()
		}
		table.Append([]string{
			strconv.FormatUint(op.ID, 10),
			op.Action.String(),
			op.Range().String(),
			strconv.FormatUint(op.Nonce, 10),
			op.GasPrice.Dec(),
			strconv.FormatUint(op.DeadlineBlock, 10),
			strconv.Itoa(len(op.TxHashes)),
			lastHash,
		})
	}
	table.SetFooter([]string{"Unconfirmed", strconv.Itoa(len(ops)), "", "", "", "", "", ""})
	table.Render()
}

func printPending(out io.Writer, queue []core.QueuedOperation) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Queue ID", "Action", "Blocks", "Data size"})
	for _, queued := range queue {
		table.Append([]string{
			strconv.FormatUint(queued.ID, 10),
			queued.Op.Action.String(),
			queued.Op.Range.String(),
			strconv.Itoa(len(queued.Op.Data)),
		})
	}
	table.SetFooter([]string{"Queued", strconv.Itoa(len(queue)), "", ""})
	table.Render()
}

func enqueue(cmd *cobra.Command, _ []string) error {
	op, err := aggregatedFromFlags(cmd)
	if err != nil {
		return err
	}

	dbPath, err := cmd.Flags().GetString(dbPathF)
	if err != nil {
		return err
	}

	database, err := openDB(dbPath, true)
	if err != nil {
		return err
	}
	defer database.Close()

	store, err := storage.New(database, new(core.Parameters))
	if err != nil {
		return err
	}

	id, err := store.EnqueueOperation(*op)
	if err != nil {
		return fmt.Errorf("enqueue operation: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Queued %s operation for blocks %s with id %d\n", op.Action, op.Range, id)
	return err
}

func aggregatedFromFlags(cmd *cobra.Command) (*core.AggregatedOperation, error) {
	actionStr, err := cmd.Flags().GetString(actionF)
	if err != nil {
		return nil, err
	}
	var action core.ActionType
	if err = action.UnmarshalText([]byte(actionStr)); err != nil {
		return nil, err
	}

	first, err := cmd.Flags().GetUint64(firstF)
	if err != nil {
		return nil, err
	}
	last, err := cmd.Flags().GetUint64(lastF)
	if err != nil {
		return nil, err
	}

	dataStr, err := cmd.Flags().GetString(dataF)
	if err != nil {
		return nil, err
	}
	var data []byte
	if dataStr != "" {
		if !strings.HasPrefix(dataStr, "0x") {
			dataStr = "0x" + dataStr
		}
		if data, err = hexutil.Decode(dataStr); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}

	op := &core.AggregatedOperation{
		Action: action,
		Range:  core.BlockRange{First: first, Last: last},
		Data:   data,
	}
	return op, op.Validate()
}

// openDB opens the database at path. Unless create is set, the database must already exist.
func openDB(path string, create bool) (db.DB, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) && !create {
		return nil, errors.New("database path does not exist")
	}

	database, err := pebble.New(path, utils.NewNopZapLogger())
	if err != nil {
		return nil, fmt.Errorf("open DB: %w", err)
	}
	return database, nil
}
