package merkle

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/mezonai/powchain/hasher"
	"github.com/mezonai/powchain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, tx transaction.Transaction) string {
	t.Helper()
	h, err := tx.Hash()
	require.NoError(t, err)
	return h
}

func randomTxs(f *fuzz.Fuzzer, n int) []transaction.Transaction {
	txs := make([]transaction.Transaction, n)
	for i := range txs {
		f.Fuzz(&txs[i].Sender)
		f.Fuzz(&txs[i].Recipient)
		txs[i].Amount = float64(i) + 0.5
	}
	return txs
}

func TestBuildDeterministic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for n := 1; n <= 9; n++ {
		txs := randomTxs(f, n)
		a, err := Build(txs)
		require.NoError(t, err)
		b, err := Build(txs)
		require.NoError(t, err)
		assert.Equal(t, a, b, "n=%d", n)
	}
}

func TestBuildSensitiveToEveryField(t *testing.T) {
	txs := []transaction.Transaction{
		transaction.NewReward("M", 10),
		transaction.New("A", "B", 5),
		transaction.New("C", "D", 7),
	}
	root, err := Build(txs)
	require.NoError(t, err)

	mutations := []func(*transaction.Transaction){
		func(tx *transaction.Transaction) { tx.Sender += "x" },
		func(tx *transaction.Transaction) { tx.Recipient += "x" },
		func(tx *transaction.Transaction) { tx.Amount++ },
	}
	for i := range txs {
		for j, mutate := range mutations {
			changed := append([]transaction.Transaction(nil), txs...)
			mutate(&changed[i])
			got, err := Build(changed)
			require.NoError(t, err)
			assert.NotEqual(t, root, got, "tx %d mutation %d", i, j)
		}
	}
}

func TestBuildSingleLeafPairsWithItself(t *testing.T) {
	a := transaction.New("A", "B", 5)
	ha := leaf(t, a)

	root, err := Build([]transaction.Transaction{a})
	require.NoError(t, err)
	assert.Equal(t, hasher.MustSum(ha+ha), root)
}

func TestBuildPairsLeftToRight(t *testing.T) {
	a, b, c := transaction.New("A", "B", 1), transaction.New("B", "C", 2), transaction.New("C", "A", 3)
	ha, hb, hc := leaf(t, a), leaf(t, b), leaf(t, c)

	root, err := Build([]transaction.Transaction{a, b})
	require.NoError(t, err)
	assert.Equal(t, hasher.MustSum(ha+hb), root)

	// three leaves: c is duplicated, then the two parents pair up
	root, err = Build([]transaction.Transaction{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, hasher.MustSum(hasher.MustSum(ha+hb)+hasher.MustSum(hc+hc)), root)
}

func TestBuildRepadsOddLevels(t *testing.T) {
	txs := make([]transaction.Transaction, 5)
	for i := range txs {
		txs[i] = transaction.New("S", "R", float64(i))
	}
	h := make([]string, len(txs))
	for i, tx := range txs {
		h[i] = leaf(t, tx)
	}

	l1 := []string{hasher.MustSum(h[0] + h[1]), hasher.MustSum(h[2] + h[3]), hasher.MustSum(h[4] + h[4])}
	l2 := []string{hasher.MustSum(l1[0] + l1[1]), hasher.MustSum(l1[2] + l1[2])}
	want := hasher.MustSum(l2[0] + l2[1])

	got, err := Build(txs)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBuildEmpty(t *testing.T) {
	root, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyRoot, root)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", root)
}

func TestPopFromEndReproducesLegacyOrder(t *testing.T) {
	h := []string{"a", "b", "c", "d"}
	dc := hasher.MustSum("d" + "c")
	x := hasher.MustSum(dc + "b")
	want := hasher.MustSum(x + "a")

	got, err := Root(h, PopFromEnd)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{"a", "b", "c", "d"}, h, "leaves must not be modified")

	canonical, err := Root(h, LeftToRight)
	require.NoError(t, err)
	assert.NotEqual(t, canonical, got)
}

func TestPopFromEndSingleLeafAgrees(t *testing.T) {
	a, err := Root([]string{"a"}, PopFromEnd)
	require.NoError(t, err)
	b, err := Root([]string{"a"}, LeftToRight)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildNonFiniteAmount(t *testing.T) {
	nan := transaction.New("A", "B", math.NaN())
	inf := transaction.New("A", "B", math.Inf(1))

	a, err := Build([]transaction.Transaction{nan})
	require.NoError(t, err)
	b, err := Build([]transaction.Transaction{inf})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, hasher.MustSum(leaf(t, nan)+leaf(t, nan)), a)
}

func TestParsePairing(t *testing.T) {
	for _, p := range []Pairing{LeftToRight, PopFromEnd} {
		got, err := ParsePairing(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePairing("right-to-left")
	assert.Error(t, err)
}
