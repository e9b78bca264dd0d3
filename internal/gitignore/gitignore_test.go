package gitignore

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"base.template": &fstest.MapFile{
			Data: []byte("# OS files\n.DS_Store\n\n.env\n"),
		},
		"python.template": &fstest.MapFile{
			Data: []byte("# Python\n__pycache__/\n.venv/\n"),
		},
		"nextjs.template": &fstest.MapFile{
			Data: []byte("# Next.js\nnode_modules/\n.next/\n"),
		},
	}
}

func TestComposeSingle(t *testing.T) {
	got, err := ComposeSingle(testFS(), "python")
	if err != nil {
		t.Fatalf("ComposeSingle() error: %v", err)
	}

	want := "# OS files\n.DS_Store\n\n.env\n" + "\n" + "# Python\n__pycache__/\n.venv/\n"
	if got != want {
		t.Errorf("ComposeSingle() = %q, want %q", got, want)
	}
}

func TestComposeSingle_BaseWithoutTrailingNewline(t *testing.T) {
	fsys := testFS()
	fsys["base.template"] = &fstest.MapFile{Data: []byte(".DS_Store")}

	got, err := ComposeSingle(fsys, "python")
	if err != nil {
		t.Fatalf("ComposeSingle() error: %v", err)
	}

	// Still exactly one blank line between base and language content.
	want := ".DS_Store\n\n# Python\n__pycache__/\n.venv/\n"
	if got != want {
		t.Errorf("ComposeSingle() = %q, want %q", got, want)
	}
}

func TestComposeSingle_MissingTemplate(t *testing.T) {
	_, err := ComposeSingle(testFS(), "ruby")
	if err == nil {
		t.Fatal("expected error for missing template")
	}

	var notFound *TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TemplateNotFoundError", err)
	}
	if notFound.Name != "ruby" {
		t.Errorf("Name = %q, want %q", notFound.Name, "ruby")
	}
}

func TestComposeSingle_MissingBase(t *testing.T) {
	fsys := testFS()
	delete(fsys, "base.template")

	_, err := ComposeSingle(fsys, "python")
	var notFound *TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TemplateNotFoundError", err)
	}
	if notFound.Name != "base" {
		t.Errorf("Name = %q, want %q", notFound.Name, "base")
	}
}

func TestComposeFullstack(t *testing.T) {
	got, err := ComposeFullstack(testFS(), []Section{
		{Language: "python", Prefix: "backend"},
		{Language: "nextjs", Prefix: "frontend"},
	})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	want := "# OS files\n.DS_Store\n\n.env\n" +
		"\n# ===== backend/ (python) =====\n" +
		"# Python\nbackend/__pycache__/\nbackend/.venv/\n" +
		"\n# ===== frontend/ (nextjs) =====\n" +
		"# Next.js\nfrontend/node_modules/\nfrontend/.next/\n"
	if got != want {
		t.Errorf("ComposeFullstack() = %q, want %q", got, want)
	}
}

func TestComposeFullstack_BaseNeverPrefixed(t *testing.T) {
	got, err := ComposeFullstack(testFS(), []Section{
		{Language: "python", Prefix: "backend"},
	})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	if !strings.HasPrefix(got, "# OS files\n.DS_Store\n\n.env\n") {
		t.Errorf("base template should open the output verbatim, got:\n%s", got)
	}
	if strings.Contains(got, "backend/.DS_Store") {
		t.Errorf("base patterns must not be prefixed, got:\n%s", got)
	}
}

func TestComposeFullstack_OrderFollowsInput(t *testing.T) {
	got, err := ComposeFullstack(testFS(), []Section{
		{Language: "nextjs", Prefix: "frontend"},
		{Language: "python", Prefix: "backend"},
	})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	nextjsAt := strings.Index(got, "# ===== frontend/ (nextjs) =====")
	pythonAt := strings.Index(got, "# ===== backend/ (python) =====")
	if nextjsAt == -1 || pythonAt == -1 {
		t.Fatalf("missing section banners in:\n%s", got)
	}
	if nextjsAt > pythonAt {
		t.Errorf("sections must follow input order (nextjs first), got:\n%s", got)
	}
}

func TestComposeFullstack_CommentAndBlankLinesUnprefixed(t *testing.T) {
	fsys := testFS()
	fsys["python.template"] = &fstest.MapFile{
		Data: []byte("# comment stays\n\n.venv/\n"),
	}

	got, err := ComposeFullstack(fsys, []Section{{Language: "python", Prefix: "backend"}})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	if !strings.Contains(got, "\n# comment stays\n") {
		t.Errorf("comment lines must pass through unprefixed, got:\n%s", got)
	}
	if strings.Contains(got, "backend/# comment") {
		t.Errorf("comment line was prefixed:\n%s", got)
	}
	if !strings.Contains(got, "backend/.venv/") {
		t.Errorf("pattern line missing prefix:\n%s", got)
	}
}

func TestComposeFullstack_NegationLineGetsPrefix(t *testing.T) {
	// The prefix rule is purely syntactic: a negation line is not a comment,
	// so it is prefixed before the "!". Pinned so nobody "fixes" it silently.
	fsys := testFS()
	fsys["python.template"] = &fstest.MapFile{
		Data: []byte("build/\n!build/keep.txt\n"),
	}

	got, err := ComposeFullstack(fsys, []Section{{Language: "python", Prefix: "backend"}})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	if !strings.Contains(got, "backend/!build/keep.txt") {
		t.Errorf("negation line should receive the literal prefix, got:\n%s", got)
	}
}

func TestComposeFullstack_EmptyTemplate(t *testing.T) {
	fsys := testFS()
	fsys["python.template"] = &fstest.MapFile{Data: []byte("")}

	got, err := ComposeFullstack(fsys, []Section{{Language: "python", Prefix: "backend"}})
	if err != nil {
		t.Fatalf("ComposeFullstack() error: %v", err)
	}

	if !strings.HasSuffix(got, "# ===== backend/ (python) =====\n") {
		t.Errorf("empty template should yield a banner with no content lines, got:\n%s", got)
	}
}

func TestComposeFullstack_MissingSectionTemplate(t *testing.T) {
	_, err := ComposeFullstack(testFS(), []Section{
		{Language: "python", Prefix: "backend"},
		{Language: "ruby", Prefix: "svc"},
	})
	var notFound *TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want TemplateNotFoundError", err)
	}
}

func TestCompose_Idempotent(t *testing.T) {
	fsys := testFS()

	first, err := ComposeSingle(fsys, "nextjs")
	if err != nil {
		t.Fatal(err)
	}
	second, err := ComposeSingle(fsys, "nextjs")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("ComposeSingle should be a pure function of its inputs")
	}

	sections := []Section{{Language: "python", Prefix: "backend"}}
	fsFirst, err := ComposeFullstack(fsys, sections)
	if err != nil {
		t.Fatal(err)
	}
	fsSecond, err := ComposeFullstack(fsys, sections)
	if err != nil {
		t.Fatal(err)
	}
	if fsFirst != fsSecond {
		t.Error("ComposeFullstack should be a pure function of its inputs")
	}
}

func TestList(t *testing.T) {
	names, err := List(testFS())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	want := []string{"base", "nextjs", "python"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestBundledTemplates(t *testing.T) {
	// The shipped template set must cover every supported project type.
	for _, name := range []string{"python", "nextjs"} {
		out, err := ComposeSingle(Templates, name)
		if err != nil {
			t.Errorf("ComposeSingle(Templates, %q) error: %v", name, err)
			continue
		}
		if !strings.Contains(out, ".DS_Store") {
			t.Errorf("bundled base content missing from %q composition", name)
		}
	}
}
