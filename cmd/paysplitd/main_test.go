package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/paysplit/orm"
	"github.com/iov-one/paysplit/x/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(append([]string{"--home", home}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err, "paysplitd %s", strings.Join(args, " "))
	return out
}

// field returns the value of the first tab separated line with given name.
func field(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		chunks := strings.SplitN(line, "\t", 2)
		if len(chunks) == 2 && chunks[0] == name {
			return chunks[1]
		}
	}
	t.Fatalf("no %q in output:\n%s", name, out)
	return ""
}

func address(t *testing.T, home, name string) string {
	t.Helper()
	out := mustRun(t, home, "keys", "show", name)
	return strings.Split(strings.TrimSpace(out), "\t")[1]
}

func TestSplitterFlow(t *testing.T) {
	home := t.TempDir()

	for _, name := range []string{"alice", "bob", "carol"} {
		mustRun(t, home, "keys", "add", name)
	}
	_, err := run(t, home, "keys", "add", "alice")
	assert.Error(t, err)
	assert.Equal(t, 3, strings.Count(mustRun(t, home, "keys", "list"), "\n"))

	mustRun(t, home, "init", "--chain-id", "paysplit-dev", "--rich", "alice", "--amount", "100", "--log-level", "error")

	// Genesis declares one simple factory.
	factory := splitter.FactoryAddress(orm.EncodeSequence(1)).String()
	out := mustRun(t, home, "tx", "create-splitter", factory, "--from", "alice")
	instance := field(t, out, "result")

	mustRun(t, home, "tx", "add-recipient", instance, "bob", "--from", "alice")
	mustRun(t, home, "tx", "add-recipient", instance, "carol", "--from", "alice")
	_, err = run(t, home, "tx", "add-recipient", instance, "carol", "--from", "bob")
	assert.Error(t, err, "only the owner administrates recipients")

	mustRun(t, home, "tx", "send", instance, "11", "--from", "alice", "--memo", "payout")

	// Anyone can trigger a split.
	out = mustRun(t, home, "tx", "split", instance, "--from", "carol")
	assert.Equal(t, "10", field(t, out, "result"))

	assert.Equal(t, "5\n", mustRun(t, home, "query", "balance", "bob"))
	assert.Equal(t, "5\n", mustRun(t, home, "query", "balance", "carol"))
	assert.Equal(t, "1\n", mustRun(t, home, "query", "balance", instance))
	assert.Equal(t, "89\n", mustRun(t, home, "query", "balance", "alice"))

	out = mustRun(t, home, "query", "splitter", instance)
	assert.Equal(t, address(t, home, "alice"), field(t, out, "owner"))
	assert.Equal(t, "1\t"+address(t, home, "bob"), field(t, out, "recipient"))

	created := mustRun(t, home, "query", "created", factory, "alice")
	assert.Equal(t, instance+"\n", created)

	mustRun(t, home, "tx", "propose-owner", instance, "bob", "--from", "alice")
	mustRun(t, home, "tx", "claim-ownership", instance, "--from", "bob")
	out = mustRun(t, home, "query", "splitter", instance)
	assert.Equal(t, address(t, home, "bob"), field(t, out, "owner"))
}

func TestTxRequiresKey(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "keys", "add", "alice")
	mustRun(t, home, "init", "--chain-id", "paysplit-dev", "--rich", "alice", "--log-level", "error")

	_, err := run(t, home, "tx", "split", "alice")
	assert.Error(t, err)
	_, err = run(t, home, "tx", "split", "alice", "--from", "nobody")
	assert.Error(t, err)
}
