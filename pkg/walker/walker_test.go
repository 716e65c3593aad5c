package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticktools/doctick/pkg/annotate"
)

// writeTree creates files under dir from a map of relative path to content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func newTestWalker(t *testing.T, opts Options) *Walker {
	t.Helper()
	if opts.Annotator == nil {
		opts.Annotator = annotate.New(annotate.DefaultMarker)
	}
	if len(opts.Include) == 0 {
		opts.Include = []string{"src/**/*.rs"}
	}
	w, err := New(opts)
	require.NoError(t, err)
	return w
}

func TestNew_Validation(t *testing.T) {
	a := annotate.New(annotate.DefaultMarker)

	_, err := New(Options{Include: []string{"**/*.rs"}, Annotator: a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root is required")

	_, err = New(Options{Root: ".", Annotator: a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include pattern")

	_, err = New(Options{Root: ".", Include: []string{"**/*.rs"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotator is required")

	_, err = New(Options{Root: ".", Include: []string{"src/[.rs"}, Annotator: a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}

func TestWalker_Files(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/main.rs":        "fn main() {}\n",
		"src/nested/path.rs": "/// docs\n",
		"src/skip_me.rs":     "/// docs\n",
		"README.md":          "# readme\n",
		"target/out.rs":      "fn out() {}\n",
	})

	w := newTestWalker(t, Options{
		Root:   dir,
		Ignore: []string{"src/skip_me.rs"},
	})

	files, err := w.Files(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/main.rs", "src/nested/path.rs"}, files)
}

func TestWalker_ProcessFile(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites_changed_file", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"src/lib.rs": strings.Join([]string{
				"/// Call fish_add_path() to update the path.\n",
				"fn fish_add_path() {}\n",
				"/// Returns a PathBuf value.\n",
			}, ""),
		})

		w := newTestWalker(t, Options{Root: dir})
		result, err := w.ProcessFile(ctx, "src/lib.rs")
		require.NoError(t, err)
		assert.Equal(t, 2, result.ChangedLines)
		assert.True(t, result.Rewritten)

		data, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"/// Call `fish_add_path()` to update the path.\n",
			"fn fish_add_path() {}\n",
			"/// Returns a `PathBuf` value.\n",
		}, ""), string(data))
	})

	t.Run("preserves_line_count_and_terminators", func(t *testing.T) {
		dir := t.TempDir()
		original := "/// Uses shell_config here.\r\n\r\nfn noop() {}\r\n/// trailing PathBuf"
		writeTree(t, dir, map[string]string{"src/crlf.rs": original})

		w := newTestWalker(t, Options{Root: dir})
		result, err := w.ProcessFile(ctx, "src/crlf.rs")
		require.NoError(t, err)
		assert.Equal(t, 1, result.ChangedLines)

		data, err := os.ReadFile(filepath.Join(dir, "src", "crlf.rs"))
		require.NoError(t, err)
		got := string(data)
		assert.Equal(t, "/// Uses `shell_config` here.\r\n\r\nfn noop() {}\r\n/// trailing PathBuf", got)
		assert.Equal(t, len(annotate.SplitLines(original)), len(annotate.SplitLines(got)))
	})

	t.Run("unchanged_file_not_rewritten", func(t *testing.T) {
		dir := t.TempDir()
		content := "/// Already has a `PathBuf` here.\nfn f() {}\n"
		writeTree(t, dir, map[string]string{"src/clean.rs": content})
		path := filepath.Join(dir, "src", "clean.rs")
		before, err := os.Stat(path)
		require.NoError(t, err)

		w := newTestWalker(t, Options{Root: dir})
		result, err := w.ProcessFile(ctx, "src/clean.rs")
		require.NoError(t, err)
		assert.Equal(t, 0, result.ChangedLines)
		assert.False(t, result.Rewritten)

		after, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, before.ModTime(), after.ModTime())
	})

	t.Run("dry_run_counts_without_writing", func(t *testing.T) {
		dir := t.TempDir()
		content := "/// Calls my_helper_fn here.\n"
		writeTree(t, dir, map[string]string{"src/dry.rs": content})

		w := newTestWalker(t, Options{Root: dir, DryRun: true})
		result, err := w.ProcessFile(ctx, "src/dry.rs")
		require.NoError(t, err)
		assert.Equal(t, 1, result.ChangedLines)
		assert.False(t, result.Rewritten)

		data, err := os.ReadFile(filepath.Join(dir, "src", "dry.rs"))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	})

	t.Run("second_pass_is_a_no_op", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{
			"src/twice.rs": "/// Run fish_add_path() then read shell_state.\n",
		})

		w := newTestWalker(t, Options{Root: dir})
		first, err := w.ProcessFile(ctx, "src/twice.rs")
		require.NoError(t, err)
		assert.Equal(t, 1, first.ChangedLines)

		second, err := w.ProcessFile(ctx, "src/twice.rs")
		require.NoError(t, err)
		assert.Equal(t, 0, second.ChangedLines)
		assert.False(t, second.Rewritten)
	})

	t.Run("rejects_non_utf8_content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "src")
		require.NoError(t, os.MkdirAll(path, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(path, "bin.rs"), []byte{0xff, 0xfe, 0x00, 0x41}, 0644))

		w := newTestWalker(t, Options{Root: dir})
		_, err := w.ProcessFile(ctx, "src/bin.rs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src/bin.rs")
		assert.Contains(t, err.Error(), "not valid UTF-8")
	})

	t.Run("missing_file_error_names_path", func(t *testing.T) {
		dir := t.TempDir()
		w := newTestWalker(t, Options{Root: dir})
		_, err := w.ProcessFile(ctx, "src/gone.rs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src/gone.rs")
	})

	t.Run("preserves_file_mode", func(t *testing.T) {
		dir := t.TempDir()
		writeTree(t, dir, map[string]string{"src/x.rs": "/// uses my_helper_fn now\n"})
		path := filepath.Join(dir, "src", "x.rs")
		require.NoError(t, os.Chmod(path, 0755))

		w := newTestWalker(t, Options{Root: dir})
		result, err := w.ProcessFile(ctx, "src/x.rs")
		require.NoError(t, err)
		assert.True(t, result.Rewritten)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	})
}
