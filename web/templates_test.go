// ABOUTME: Tests for the embedded template engine: parsing, rendering, and missing-template errors.
// ABOUTME: Renders to a buffer via RenderTo to avoid HTTP plumbing.
package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matthewharwood/engmanager.xyz-sub002/content"
)

func TestNewTemplateEngine_ParsesAllPages(t *testing.T) {
	e, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine failed: %v", err)
	}
	for _, page := range []string{"admin_home.html", "admin_editor.html"} {
		if _, ok := e.templates[page]; !ok {
			t.Errorf("template %s not loaded", page)
		}
	}
}

func TestTemplateEngine_RenderTo_WrapsLayout(t *testing.T) {
	e, err := NewTemplateEngine()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	data := PageData{
		Title:  "Content Admin",
		Routes: content.DefaultRoutes(),
	}
	if err := e.RenderTo(&buf, "admin_home.html", data); err != nil {
		t.Fatalf("RenderTo failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("output missing layout doctype")
	}
	if !strings.Contains(out, "<title>Content Admin</title>") {
		t.Error("output missing page title")
	}
	if !strings.Contains(out, "homepage") {
		t.Error("output missing route listing")
	}
}

func TestTemplateEngine_RenderTo_UnknownTemplate(t *testing.T) {
	e, err := NewTemplateEngine()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := e.RenderTo(&buf, "nope.html", PageData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}
