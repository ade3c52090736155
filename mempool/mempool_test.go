package mempool

import (
	"testing"

	"github.com/mezonai/powchain/transaction"
)

func TestSubmitKeepsInsertionOrder(t *testing.T) {
	mp := NewMempool()

	if !mp.Submit("A", "B", 5) {
		t.Fatal("Submit should always succeed")
	}
	mp.Submit("A", "B", 5)
	mp.Submit("C", "D", -1)

	if mp.Len() != 3 {
		t.Fatalf("Expected 3 txs, got %d", mp.Len())
	}

	want := []transaction.Transaction{
		transaction.New("A", "B", 5),
		transaction.New("A", "B", 5),
		transaction.New("C", "D", -1),
	}
	got := mp.List()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tx %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestListReturnsCopy(t *testing.T) {
	mp := NewMempool()
	mp.Submit("A", "B", 1)

	list := mp.List()
	list[0].Amount = 99

	if mp.List()[0].Amount != 1 {
		t.Fatal("List must not expose the internal buffer")
	}
}

func TestDrainEmptiesPool(t *testing.T) {
	mp := NewMempool()
	mp.Submit("A", "B", 1)
	mp.Submit("B", "C", 2)

	drained := mp.Drain()
	if len(drained) != 2 {
		t.Fatalf("Expected 2 drained txs, got %d", len(drained))
	}
	if mp.Len() != 0 {
		t.Fatalf("Expected empty pool after drain, got %d", mp.Len())
	}

	// new submissions must not write into the drained slice
	mp.Submit("X", "Y", 3)
	if drained[0].Sender != "A" || drained[1].Sender != "B" {
		t.Fatalf("Drained slice changed after new submit: %+v", drained)
	}
}

func TestDrainEmpty(t *testing.T) {
	mp := NewMempool()
	if got := mp.Drain(); len(got) != 0 {
		t.Fatalf("Expected nothing, got %d", len(got))
	}
}

func TestRestorePutsTxsFirst(t *testing.T) {
	mp := NewMempool()
	mp.Submit("A", "B", 1)
	drained := mp.Drain()
	mp.Submit("C", "D", 2)

	mp.Restore(drained)

	got := mp.List()
	if len(got) != 2 || got[0].Sender != "A" || got[1].Sender != "C" {
		t.Fatalf("Unexpected order after restore: %+v", got)
	}
}
