package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soyc-go/packages/compiler/driver"
	"soyc-go/packages/compiler/soytree"
	"soyc-go/packages/compiler/util"
)

func sourceFile(content string) *util.ParseSourceFile {
	return util.NewParseSourceFile(content, "test.soy")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStructure(t *testing.T) {
	t.Run("should parse and structure a template", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		nodes := driver.Structure(sourceFile(`<p>x</p>`), reporter)
		require.False(t, reporter.HasErrors())
		expected := "HtmlOpenTag <p>\n" +
			"RawText \"x\"\n" +
			"HtmlCloseTag </p>\n"
		assert.Equal(t, expected, soytree.TreeString(nodes))
	})

	t.Run("should collect errors from both phases", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		driver.Structure(sourceFile(`{if $x}<div{/if}`), reporter)
		require.True(t, reporter.HasErrors())
	})
}

func TestFlatten(t *testing.T) {
	t.Run("should render normalized raw text", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		nodes := driver.Flatten(sourceFile(`<div   a=1>x</div>`), reporter)
		require.False(t, reporter.HasErrors())
		require.Len(t, nodes, 1)
		rt, ok := nodes[0].(*soytree.RawTextNode)
		require.True(t, ok, "expected a raw text node, got %T", nodes[0])
		assert.Equal(t, `<div a=1>x</div>`, rt.Text())
	})
}

func TestProcessFiles(t *testing.T) {
	t.Run("should keep results in input order", func(t *testing.T) {
		files := []*util.ParseSourceFile{
			util.NewParseSourceFile(`<a href="1">one</a>`, "one.soy"),
			util.NewParseSourceFile(`<b>two</b>`, "two.soy"),
			util.NewParseSourceFile(`three`, "three.soy"),
		}
		results, err := driver.ProcessFiles(context.Background(), files, driver.Options{})
		require.NoError(t, err)
		require.Len(t, results, len(files))
		for i, res := range results {
			require.NotNil(t, res)
			assert.Same(t, files[i], res.File)
			assert.NotEmpty(t, res.Nodes)
			assert.Empty(t, res.Errors)
		}
	})

	t.Run("should flatten when asked", func(t *testing.T) {
		files := []*util.ParseSourceFile{
			util.NewParseSourceFile(`<div   a=1>x</div>`, "a.soy"),
		}
		results, err := driver.ProcessFiles(context.Background(), files, driver.Options{Flatten: true})
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, results[0].Nodes, 1)
		rt := results[0].Nodes[0].(*soytree.RawTextNode)
		assert.Equal(t, `<div a=1>x</div>`, rt.Text())
	})

	t.Run("should collect errors without stopping by default", func(t *testing.T) {
		files := []*util.ParseSourceFile{
			util.NewParseSourceFile(`x</script>`, "bad.soy"),
			util.NewParseSourceFile(`fine`, "good.soy"),
		}
		results, err := driver.ProcessFiles(context.Background(), files, driver.Options{})
		require.NoError(t, err)
		require.NotEmpty(t, results[0].Errors)
		assert.Empty(t, results[1].Errors)
	})

	t.Run("should not flatten a file with errors", func(t *testing.T) {
		files := []*util.ParseSourceFile{
			util.NewParseSourceFile(`{if $x}<div{/if}`, "bad.soy"),
		}
		results, err := driver.ProcessFiles(context.Background(), files, driver.Options{Flatten: true})
		require.NoError(t, err)
		require.NotEmpty(t, results[0].Errors)
		require.NotEmpty(t, results[0].Nodes)
	})

	t.Run("should stop scheduling after a failure when failing fast", func(t *testing.T) {
		files := []*util.ParseSourceFile{
			util.NewParseSourceFile(`x</script>`, "bad.soy"),
		}
		for i := 0; i < 8; i++ {
			files = append(files, util.NewParseSourceFile(`fine`, "good.soy"))
		}
		opts := driver.Options{FailFast: true, Parallelism: 1}
		results, err := driver.ProcessFiles(context.Background(), files, opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse errors")
		require.NotNil(t, results[0])
		assert.NotEmpty(t, results[0].Errors)
		assert.Nil(t, results[len(results)-1])
	})
}

func TestReadSourceFile(t *testing.T) {
	t.Run("should load a template from disk", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "greet.soy", `Hello {$name}`)
		file, err := driver.ReadSourceFile(path)
		require.NoError(t, err)
		assert.Equal(t, `Hello {$name}`, file.Content)
		assert.Equal(t, path, file.URL)
	})

	t.Run("should wrap the error for a missing file", func(t *testing.T) {
		_, err := driver.ReadSourceFile(filepath.Join(t.TempDir(), "missing.soy"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading template")
	})
}

func TestLoadManifest(t *testing.T) {
	t.Run("should resolve relative paths against the manifest", func(t *testing.T) {
		dir := t.TempDir()
		manifest := writeFile(t, dir, "templates.yaml",
			"files:\n  - greet.soy\n  - sub/page.soy\n  - /abs/other.soy\n")
		paths, err := driver.LoadManifest(manifest)
		require.NoError(t, err)
		expected := []string{
			filepath.Join(dir, "greet.soy"),
			filepath.Join(dir, "sub", "page.soy"),
			"/abs/other.soy",
		}
		assert.Equal(t, expected, paths)
	})

	t.Run("should reject a manifest that names no files", func(t *testing.T) {
		manifest := writeFile(t, t.TempDir(), "templates.yaml", "files: []\n")
		_, err := driver.LoadManifest(manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "names no files")
	})

	t.Run("should wrap the error for a missing manifest", func(t *testing.T) {
		_, err := driver.LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading manifest")
	})

	t.Run("should wrap a yaml parse error", func(t *testing.T) {
		manifest := writeFile(t, t.TempDir(), "templates.yaml", "files: [unclosed\n")
		_, err := driver.LoadManifest(manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing manifest")
	})
}

func TestManifestPipeline(t *testing.T) {
	t.Run("should process every file a manifest names", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "one.soy", `<p   class="a">x</p>`)
		writeFile(t, dir, "two.soy", `{if $x}<b>y</b>{/if}`)
		manifest := writeFile(t, dir, "templates.yaml", "files:\n  - one.soy\n  - two.soy\n")

		paths, err := driver.LoadManifest(manifest)
		require.NoError(t, err)
		files := make([]*util.ParseSourceFile, len(paths))
		for i, p := range paths {
			files[i], err = driver.ReadSourceFile(p)
			require.NoError(t, err)
		}

		results, err := driver.ProcessFiles(context.Background(), files, driver.Options{Flatten: true})
		require.NoError(t, err)
		require.Len(t, results, 2)

		rt := results[0].Nodes[0].(*soytree.RawTextNode)
		assert.Equal(t, `<p class="a">x</p>`, rt.Text())
		assert.Equal(t, "ControlFlow if\n  Branch $x\n    RawText \"<b>y</b>\"\n",
			soytree.TreeString(results[1].Nodes))
	})
}
