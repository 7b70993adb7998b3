package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const diaryOverride = `<!DOCTYPE html>
<html><body>
<nav>{{TABLE_OF_CONTENTS}}</nav>
<main class="diary">{{STAGES_CONTENT}}</main>
</body></html>`

// symlinkOrSkip creates link pointing at target, skipping where symlinks are unavailable.
func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(link), err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlink unavailable: %v", err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	assetsDir := t.TempDir()
	notADir := writeAsset(t, t.TempDir(), "", "site.css", "body{}")

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "assets directory", path: assetsDir},
		{name: "empty path", path: "", wantErr: ErrInvalidBasePath},
		{name: "missing directory", path: filepath.Join(assetsDir, "absent"), wantErr: ErrInvalidBasePath},
		{name: "regular file", path: notADir, wantErr: ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewFilesystemLoader(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewFilesystemLoader(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr == nil && loader == nil {
				t.Fatal("NewFilesystemLoader() returned nil loader")
			}
		})
	}
}

func TestFilesystemLoader_DiaryOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates", "diary.html", diaryOverride)
	writeAsset(t, dir, "styles", "default.css", ".stage { margin: 0 }")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tmpl, err := loader.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate(%q) error = %v", DefaultTemplateName, err)
	}
	if tmpl != diaryOverride {
		t.Errorf("LoadTemplate(%q) = %q, want override", DefaultTemplateName, tmpl)
	}
	if err := ValidateTemplate(DefaultTemplateName, tmpl); err != nil {
		t.Errorf("override fails validation: %v", err)
	}

	css, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}
	if css != ".stage { margin: 0 }" {
		t.Errorf("LoadStyle(%q) = %q", DefaultStyleName, css)
	}
}

func TestFilesystemLoader_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "default.css", "body{}")
	writeAsset(t, dir, "templates", "diary.html", diaryOverride)

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		wantErr error
	}{
		{name: "unknown style", load: loader.LoadStyle, asset: "dark", wantErr: ErrStyleNotFound},
		{name: "unknown template", load: loader.LoadTemplate, asset: "timeline", wantErr: ErrTemplateNotFound},
		{name: "style from templates dir", load: loader.LoadStyle, asset: "diary", wantErr: ErrStyleNotFound},
		{name: "empty style name", load: loader.LoadStyle, asset: "", wantErr: ErrInvalidAssetName},
		{name: "style with extension", load: loader.LoadStyle, asset: "default.css", wantErr: ErrInvalidAssetName},
		{name: "template climbing out", load: loader.LoadTemplate, asset: "../diary", wantErr: ErrInvalidAssetName},
		{name: "template with backslash", load: loader.LoadTemplate, asset: `..\diary`, wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_NotFoundNamesAsset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadTemplate("diary")
	if err == nil {
		t.Fatal("LoadTemplate() error = nil, want not found")
	}
	if !strings.Contains(err.Error(), `"diary"`) {
		t.Errorf("error %q does not name the template", err)
	}
}

func TestFilesystemLoader_Symlinks(t *testing.T) {
	t.Parallel()

	t.Run("style linked outside assets dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outside := writeAsset(t, t.TempDir(), "", "leak.css", "body{background:red}")
		symlinkOrSkip(t, outside, filepath.Join(dir, "styles", "default.css"))

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if _, err := loader.LoadStyle(DefaultStyleName); !errors.Is(err, ErrPathTraversal) {
			t.Errorf("LoadStyle() error = %v, want ErrPathTraversal", err)
		}
	})

	t.Run("templates dir linked outside assets dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		shared := t.TempDir()
		writeAsset(t, shared, "", "diary.html", diaryOverride)
		symlinkOrSkip(t, shared, filepath.Join(dir, "templates"))

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if _, err := loader.LoadTemplate(DefaultTemplateName); !errors.Is(err, ErrPathTraversal) {
			t.Errorf("LoadTemplate() error = %v, want ErrPathTraversal", err)
		}
	})

	t.Run("link staying inside assets dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := writeAsset(t, dir, "themes", "paper.css", ".stage{}")
		symlinkOrSkip(t, target, filepath.Join(dir, "styles", "default.css"))

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		css, err := loader.LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if css != ".stage{}" {
			t.Errorf("LoadStyle() = %q, want %q", css, ".stage{}")
		}
	})

	t.Run("linked assets dir", func(t *testing.T) {
		t.Parallel()

		realDir := t.TempDir()
		writeAsset(t, realDir, "styles", "default.css", "p{}")
		link := filepath.Join(t.TempDir(), "assets")
		symlinkOrSkip(t, realDir, link)

		loader, err := NewFilesystemLoader(link)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if _, err := loader.LoadStyle(DefaultStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})
}

func TestAssetResolver_DiaryOverrides(t *testing.T) {
	t.Parallel()

	t.Run("custom diary template and default style", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "templates", "diary.html", diaryOverride)
		writeAsset(t, dir, "styles", "default.css", "h2.stage-title{color:navy}")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		tmpl, err := r.ResolveTemplate("")
		if err != nil {
			t.Fatalf("ResolveTemplate() error = %v", err)
		}
		if tmpl != diaryOverride {
			t.Errorf("ResolveTemplate() = %q, want override", tmpl)
		}
		css, err := r.ResolveStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("ResolveStyle() error = %v", err)
		}
		if css != "h2.stage-title{color:navy}" {
			t.Errorf("ResolveStyle() = %q", css)
		}
	})

	t.Run("override without stages placeholder", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeAsset(t, dir, "templates", "diary.html", "<nav>{{TABLE_OF_CONTENTS}}</nav>")

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		_, err = r.ResolveTemplate(DefaultTemplateName)
		if !errors.Is(err, ErrIncompleteTemplate) {
			t.Fatalf("ResolveTemplate() error = %v, want ErrIncompleteTemplate", err)
		}
		if !strings.Contains(err.Error(), "{{STAGES_CONTENT}}") {
			t.Errorf("error %q does not name the missing placeholder", err)
		}
	})

	t.Run("escaping style link is not masked by embedded fallback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		outside := writeAsset(t, t.TempDir(), "", "leak.css", "body{}")
		symlinkOrSkip(t, outside, filepath.Join(dir, "styles", "default.css"))

		r, err := NewAssetResolver(dir)
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if _, err := r.ResolveStyle(DefaultStyleName); !errors.Is(err, ErrPathTraversal) {
			t.Errorf("ResolveStyle() error = %v, want ErrPathTraversal", err)
		}
	})
}
