package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeInput(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func runGroup(t *testing.T, config GroupConfig, stdin string, files ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	if config.Separator == "" {
		config.Separator = "="
	}
	if config.Output == "" {
		config.Output = "text"
	}

	var out, errOut bytes.Buffer
	err := config.Run(strings.NewReader(stdin), &out, &errOut, files)
	return out.String(), err
}

const rolesInput = `
# roles
admin = alice
viewer=bob
admin=carol
viewer = bob

editor=dave
`

func TestGroupText(t *testing.T) {
	out, err := runGroup(t, GroupConfig{}, rolesInput)
	require.NoError(t, err)
	require.Equal(t, "admin (2)\n  alice\n  carol\neditor (1)\n  dave\nviewer (1)\n  bob\n", out)
}

func TestGroupAllowDuplicates(t *testing.T) {
	out, err := runGroup(t, GroupConfig{AllowDuplicates: true}, rolesInput)
	require.NoError(t, err)
	require.Contains(t, out, "viewer (2)\n  bob\n  bob\n")
}

func TestGroupIgnoreCase(t *testing.T) {
	out, err := runGroup(t, GroupConfig{IgnoreCase: true, Output: "json"}, "Admin=alice\nADMIN=bob\nadmin=alice\n")
	require.NoError(t, err)
	require.JSONEq(t, `{"Admin": ["alice", "bob"]}`, out)
}

func TestGroupYAML(t *testing.T) {
	out, err := runGroup(t, GroupConfig{Output: "yaml"}, rolesInput)
	require.NoError(t, err)

	var grouped map[string][]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &grouped))
	require.Empty(t, cmp.Diff(map[string][]string{
		"admin":  {"alice", "carol"},
		"editor": {"dave"},
		"viewer": {"bob"},
	}, grouped))
}

func TestGroupRemove(t *testing.T) {
	out, err := runGroup(t, GroupConfig{Output: "json", Remove: []string{"admin=alice", "editor=dave", "viewer=nobody"}}, rolesInput)
	require.NoError(t, err)
	require.JSONEq(t, `{"admin": ["carol"], "viewer": ["bob"]}`, out)

	_, err = runGroup(t, GroupConfig{Remove: []string{"admin"}}, rolesInput)
	require.ErrorContains(t, err, `invalid --remove pair "admin"`)
}

func TestGroupFiles(t *testing.T) {
	first := writeInput(t, "first.txt", "a: 1\nb: 2\n")
	second := writeInput(t, "second.txt", "a: 3\n")

	out, err := runGroup(t, GroupConfig{Separator: ":", Output: "json"}, "ignored=stdin", first, second)
	require.NoError(t, err)
	require.JSONEq(t, `{"a": ["1", "3"], "b": ["2"]}`, out)

	_, err = runGroup(t, GroupConfig{}, "", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGroupMalformedLine(t *testing.T) {
	_, err := runGroup(t, GroupConfig{}, "a=1\n\nnope\n")
	require.EqualError(t, err, `<stdin>:3: missing separator "="`)

	path := writeInput(t, "bad.txt", "# header\nbroken\n")
	_, err = runGroup(t, GroupConfig{}, "", path)
	require.EqualError(t, err, path+`:2: missing separator "="`)
}

func TestGroupInvalidConfig(t *testing.T) {
	_, err := (&GroupConfig{Separator: "", Output: "text"}).Complete()
	require.Error(t, err)

	_, err = (&GroupConfig{Separator: "=", Output: "xml"}).Complete()
	require.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestGroupPrintMetrics(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	config := GroupConfig{Separator: "=", Output: "text", PrintMetrics: true}
	require.NoError(t, config.Run(strings.NewReader(rolesInput), &out, &errOut, nil))
	require.Contains(t, errOut.String(), `multidict_dictionary_keys{dictionary="group"} 3`)
	require.Contains(t, errOut.String(), `multidict_dictionary_values{dictionary="group"} 4`)
}

func newTestRootCommand(t *testing.T) (*bytes.Buffer, func(args ...string) error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	return &out, func(args ...string) error {
		rootCmd := NewRootCommand("multidict")
		RegisterRootFlags(rootCmd)

		config := new(GroupConfig)
		groupCmd := NewGroupCommand(rootCmd.Use, config)
		require.NoError(t, RegisterGroupFlags(groupCmd, config))
		rootCmd.AddCommand(groupCmd)

		rootCmd.SetArgs(args)
		rootCmd.SetIn(strings.NewReader(""))
		rootCmd.SetOut(&out)
		return rootCmd.Execute()
	}
}

func TestGroupCommand(t *testing.T) {
	path := writeInput(t, "roles.txt", rolesInput)

	out, execute := newTestRootCommand(t)
	require.NoError(t, execute("group", "--output", "json", "--remove", "admin=carol", path))
	require.JSONEq(t, `{"admin": ["alice"], "editor": ["dave"], "viewer": ["bob"]}`, out.String())
}

func TestGroupCommandEnvironment(t *testing.T) {
	path := writeInput(t, "roles.txt", "a:1\na:1\n")
	t.Setenv("MULTIDICT_SEPARATOR", ":")
	t.Setenv("MULTIDICT_ALLOW_DUPLICATES", "true")

	out, execute := newTestRootCommand(t)
	require.NoError(t, execute("group", path))
	require.Equal(t, "a (2)\n  1\n  1\n", out.String())
}
