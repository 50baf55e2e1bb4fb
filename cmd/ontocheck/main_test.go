package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontocheck/internal/config"
)

const ontologyYAML = `axioms:
  - kind: SubClassOf
    sub: Student
    super: Person
  - kind: EquivalentClasses
    classes: [Person, Human]
  - kind: ClassAssertion
    individual: alice
    class: Student
  - kind: ClassAssertion
    individual: rex
    class: Dog
`

const candidatesYAML = `axioms:
  - kind: ClassAssertion
    individual: alice
    class: Human
  - kind: ClassAssertion
    individual: rex
    class: Person
  - kind: SubClassOf
    sub: Student
    super: Person
`

type testEnv struct {
	dir        string
	ontology   string
	candidates string
	config     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		ontology:   filepath.Join(dir, "people.yaml"),
		candidates: filepath.Join(dir, "candidates.yaml"),
		config:     filepath.Join(dir, "config.yaml"),
	}
	require.NoError(t, os.WriteFile(env.ontology, []byte(ontologyYAML), 0644))
	require.NoError(t, os.WriteFile(env.candidates, []byte(candidatesYAML), 0644))
	cfg := "database:\n  path: " + filepath.Join(dir, "kb.db") + "\nlogging:\n  level: error\nwatch:\n  debounce: 20ms\n"
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0644))
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.config}, args...))
	err := root.Execute()
	return out.String(), err
}

// syncBuffer is written by the watch callback while the test reads it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCheckAgainstOntologyFile(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "check", env.candidates, "--ontology", env.ontology)
	require.Error(t, err, "the unsupported SubClassOf candidate fails")
	assert.Contains(t, err.Error(), "1 checks failed")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "ENTAILED\tClassAssertion(Human alice)", lines[0])
	assert.Equal(t, "NOT ENTAILED\tClassAssertion(Person rex)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "ERROR\tSubClassOf(Student Person)"))
}

func TestImportThenCheckStore(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "import", env.ontology)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 4 axioms")

	out, err = env.run(t, "import", env.ontology, "--merge")
	require.NoError(t, err)
	assert.Contains(t, out, "imported 0 axioms")

	out, err = env.run(t, "axioms", "--kind", "ClassAssertion")
	require.NoError(t, err)
	assert.Contains(t, out, "ClassAssertion(Student alice)")
	assert.NotContains(t, out, "SubClassOf")

	candidates := filepath.Join(env.dir, "ok.json")
	require.NoError(t, os.WriteFile(candidates, []byte(`{"axioms":[{"kind":"ClassAssertion","individual":"alice","class":"Person"}]}`), 0644))

	out, err = env.run(t, "check", candidates, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"entailed":true`)
	assert.Contains(t, out, `"kind":"ClassAssertion"`)
}

func TestExportRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "import", env.ontology)
	require.NoError(t, err)

	exported := filepath.Join(env.dir, "exported.json")
	out, err := env.run(t, "export", exported, "--iri", "http://example.org/people")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 4 axioms")

	_, err = env.run(t, "import", exported)
	require.NoError(t, err)
}

func TestCheckRejectsBadFlags(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "check", env.candidates, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = env.run(t, "check", env.candidates, "--watch")
	assert.ErrorContains(t, err, "--watch requires --ontology")

	_, err = env.run(t, "axioms", "--kind", "Bogus")
	assert.Error(t, err)
}

func TestCheckWatchRechecksOnOntologyChange(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	root := newRootCmd()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"--config", env.config, "check", env.candidates, "--ontology", env.ontology, "--watch"})

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "ENTAILED\tClassAssertion(Human alice)")
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "NOT ENTAILED\tClassAssertion(Human alice)")

	// Without Student ⊑ Person alice is no longer a Human. The file is
	// rewritten until the watcher has picked it up.
	withoutSubclass := `axioms:
  - kind: EquivalentClasses
    classes: [Person, Human]
  - kind: ClassAssertion
    individual: alice
    class: Student
`
	require.Eventually(t, func() bool {
		if err := os.WriteFile(env.ontology, []byte(withoutSubclass), 0644); err != nil {
			return false
		}
		return strings.Contains(out.String(), "NOT ENTAILED\tClassAssertion(Human alice)")
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("check --watch did not stop after cancel")
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	target := filepath.Join(env.dir, "written", "ontocheck.yaml")
	out, err := env.run(t, "config", "init", target)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote config to "+target)

	cfg, _, err := config.LoadFromPath(target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.dir, "kb.db"), cfg.Database.Path)
	assert.Equal(t, 20*time.Millisecond, cfg.Watch.Debounce.Duration())

	_, err = env.run(t, "config", "init", target)
	assert.ErrorContains(t, err, "already exists")

	_, err = env.run(t, "config", "init", target, "--force")
	require.NoError(t, err)
}

func TestConfigInitDefaultsToUserConfigDir(t *testing.T) {
	env := newTestEnv(t)
	xdg := filepath.Join(env.dir, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	_, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(xdg, "ontocheck", "config.yaml"))
}
