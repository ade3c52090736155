package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mezonai/powchain/ledger"
	"github.com/mezonai/powchain/logx"
	"github.com/spf13/cobra"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive menu for submitting transfers and mining blocks",
	Long: `Starts a ledger (mining its genesis block) and reads menu choices from stdin.

Menu:
  1  submit a transaction (prompts for sender, recipient, amount)
  2  mine a block
  3  change difficulty
  4  change reward
  5  show chain
  0  exit

Ctrl-C while a block is being mined cancels that search only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ld, err := buildLedger(cmd)
		if err != nil {
			return err
		}
		return newConsole(ld, cmd.InOrStdin(), cmd.OutOrStdout()).run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

const menu = `
1) Submit transaction
2) Mine block
3) Change difficulty
4) Change reward
5) Show chain
0) Exit`

type console struct {
	ld  *ledger.Ledger
	in  *bufio.Scanner
	out io.Writer
	p   printer
}

func newConsole(ld *ledger.Ledger, in io.Reader, out io.Writer) *console {
	return &console{
		ld:  ld,
		in:  bufio.NewScanner(in),
		out: out,
		p:   printer{w: out},
	}
}

// readLine prompts and returns the next trimmed line; false means input is exhausted.
func (c *console) readLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.p.success("Ledger ready: %d block(s), last hash %s", c.ld.Len(), c.ld.LastHash())

	for {
		fmt.Fprintln(c.out, menu)
		choice, ok := c.readLine("> ")
		if !ok {
			return c.in.Err()
		}
		switch choice {
		case "1":
			if !c.submit() {
				return c.in.Err()
			}
		case "2":
			c.mine(ctx)
		case "3":
			if !c.changeDifficulty() {
				return c.in.Err()
			}
		case "4":
			if !c.changeReward() {
				return c.in.Err()
			}
		case "5":
			if err := renderChain(c.out, c.ld.Blocks()); err != nil {
				return err
			}
		case "0", "q", "quit", "exit":
			c.p.info("Bye")
			return nil
		case "":
		default:
			c.p.fail("Unknown choice %q", choice)
		}
	}
}

func (c *console) submit() bool {
	sender, ok := c.readLine("Sender: ")
	if !ok {
		return false
	}
	recipient, ok := c.readLine("Recipient: ")
	if !ok {
		return false
	}
	raw, ok := c.readLine("Amount: ")
	if !ok {
		return false
	}
	amount, err := parseAmount(raw)
	if err != nil {
		c.p.fail("%v", err)
		return true
	}
	if c.ld.SubmitTransaction(sender, recipient, amount) {
		c.p.success("Transaction added, %d pending", len(c.ld.PendingTransactions()))
	}
	return true
}

func (c *console) mine(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	c.p.info("Mining at difficulty %d...", c.ld.Difficulty())
	b, err := c.ld.MineBlock(ctx)
	if err != nil {
		logx.Error("CONSOLE", "Mining failed: ", err)
		c.p.fail("Mining failed: %v", err)
		return
	}
	c.p.success("Block %d sealed", c.ld.Height())
	renderBlock(c.out, c.ld.Height(), b)
}

func (c *console) changeDifficulty() bool {
	raw, ok := c.readLine("Difficulty: ")
	if !ok {
		return false
	}
	difficulty, err := parseDifficulty(raw)
	if err != nil {
		c.p.fail("%v", err)
		return true
	}
	if c.ld.UpdateDifficulty(difficulty) {
		c.p.success("Difficulty set to %d", difficulty)
	}
	return true
}

func (c *console) changeReward() bool {
	raw, ok := c.readLine("Reward: ")
	if !ok {
		return false
	}
	reward, err := parseAmount(raw)
	if err != nil {
		c.p.fail("%v", err)
		return true
	}
	if c.ld.UpdateReward(reward) {
		c.p.success("Reward set to %s", formatAmount(reward))
	}
	return true
}
