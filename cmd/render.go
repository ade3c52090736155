package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mezonai/powchain/block"
	"github.com/pterm/pterm"
)

const shortHashLen = 16

type printer struct {
	w io.Writer
}

func (p printer) info(format string, args ...interface{}) {
	pterm.Info.WithWriter(p.w).Printfln(format, args...)
}

func (p printer) success(format string, args ...interface{}) {
	pterm.Success.WithWriter(p.w).Printfln(format, args...)
}

func (p printer) fail(format string, args ...interface{}) {
	pterm.Error.WithWriter(p.w).Printfln(format, args...)
}

func shortHash(h string) string {
	if len(h) <= shortHashLen {
		return h
	}
	return h[:shortHashLen] + "..."
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderBlock prints one sealed block with its full header and transaction list.
func renderBlock(w io.Writer, height uint64, b *block.Block) {
	h := b.Header
	body := pterm.Sprintfln("hash:          %s", b.Hash())
	body += pterm.Sprintfln("previous_hash: %s", h.PreviousHash)
	body += pterm.Sprintfln("merkle_root:   %s", h.MerkleRoot)
	body += pterm.Sprintfln("timestamp:     %s", time.Unix(h.Timestamp, 0).UTC().Format(time.RFC3339))
	body += pterm.Sprintfln("nonce:         %d", h.Nonce)
	body += pterm.Sprintfln("difficulty:    %d", h.Difficulty)
	body += pterm.Sprintfln("transactions:  %d", b.TransactionCount)
	for i, tx := range b.Transactions {
		sender := tx.Sender
		if tx.IsReward() {
			sender = "<reward>"
		}
		body += pterm.Sprintfln("  [%d] %s -> %s : %s", i, sender, tx.Recipient, formatAmount(tx.Amount))
	}

	box := pterm.DefaultBox.WithTitle(pterm.LightCyan(fmt.Sprintf("|BLOCK %d|", height))).WithTitleTopLeft()
	fmt.Fprintln(w, box.Sprint(body))
}

// renderChain prints a one-line summary per block.
func renderChain(w io.Writer, blocks []*block.Block) error {
	data := pterm.TableData{{"Height", "Hash", "Previous", "Merkle root", "Nonce", "Difficulty", "Txs"}}
	for i, b := range blocks {
		data = append(data, []string{
			strconv.Itoa(i),
			shortHash(b.Hash()),
			shortHash(b.Header.PreviousHash),
			shortHash(b.Header.MerkleRoot),
			strconv.FormatUint(b.Header.Nonce, 10),
			strconv.FormatUint(uint64(b.Header.Difficulty), 10),
			strconv.FormatUint(uint64(b.TransactionCount), 10),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(w).Render()
}
