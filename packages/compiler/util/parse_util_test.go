package util_test

import (
	"testing"

	"soyc-go/packages/compiler/util"
)

func location(t *testing.T, file *util.ParseSourceFile, offset, line, col int) {
	t.Helper()
	loc := file.LocationAt(offset)
	if loc.Offset != offset || loc.Line != line || loc.Col != col {
		t.Errorf("LocationAt(%d): expected %d:%d, got %d:%d at offset %d",
			offset, line, col, loc.Line, loc.Col, loc.Offset)
	}
}

func TestParseSourceFile_LocationAt(t *testing.T) {
	file := util.NewParseSourceFile("ab\ncd\nef", "test.soy")

	t.Run("should track lines and columns", func(t *testing.T) {
		location(t, file, 0, 0, 0)
		location(t, file, 2, 0, 2)
		location(t, file, 3, 1, 0)
		location(t, file, 5, 1, 2)
		location(t, file, 6, 2, 0)
		location(t, file, 8, 2, 2)
	})

	t.Run("should clamp past the end of the file", func(t *testing.T) {
		loc := file.LocationAt(100)
		if loc.Offset != 8 {
			t.Errorf("Expected offset 8, got %d", loc.Offset)
		}
	})

	t.Run("should format as url, line and column", func(t *testing.T) {
		if got := file.LocationAt(4).String(); got != "test.soy@1:1" {
			t.Errorf("Expected %q, got %q", "test.soy@1:1", got)
		}
	})
}

func TestParseLocation_MoveBy(t *testing.T) {
	file := util.NewParseSourceFile("ab\ncd\nef", "test.soy")

	t.Run("should move forward across newlines", func(t *testing.T) {
		loc := file.LocationAt(0).MoveBy(4)
		if loc.Offset != 4 || loc.Line != 1 || loc.Col != 1 {
			t.Errorf("Expected 4@1:1, got %d@%d:%d", loc.Offset, loc.Line, loc.Col)
		}
	})

	t.Run("should move backward within a line", func(t *testing.T) {
		loc := file.LocationAt(4).MoveBy(-1)
		if loc.Offset != 3 || loc.Line != 1 || loc.Col != 0 {
			t.Errorf("Expected 3@1:0, got %d@%d:%d", loc.Offset, loc.Line, loc.Col)
		}
	})

	t.Run("should not move past either end", func(t *testing.T) {
		if got := file.LocationAt(6).MoveBy(100).Offset; got != 8 {
			t.Errorf("Expected offset 8, got %d", got)
		}
		if got := file.LocationAt(2).MoveBy(-100).Offset; got != 0 {
			t.Errorf("Expected offset 0, got %d", got)
		}
	})
}

func TestParseSourceSpan(t *testing.T) {
	file := util.NewParseSourceFile("ab\ncd\nef", "test.soy")
	spanOf := func(begin, end int) *util.ParseSourceSpan {
		return util.NewParseSourceSpan(file.LocationAt(begin), file.LocationAt(end), nil, nil)
	}

	t.Run("should return the covered text", func(t *testing.T) {
		if got := spanOf(3, 5).String(); got != "cd" {
			t.Errorf("Expected %q, got %q", "cd", got)
		}
	})

	t.Run("should default the full start to the start", func(t *testing.T) {
		span := spanOf(3, 5)
		if span.FullStart != span.Start {
			t.Error("Expected FullStart to default to Start")
		}
	})

	t.Run("should extend to cover both spans", func(t *testing.T) {
		extended := spanOf(3, 5).Extend(spanOf(0, 2))
		if extended.Start.Offset != 0 || extended.End.Offset != 5 {
			t.Errorf("Expected 0..5, got %d..%d", extended.Start.Offset, extended.End.Offset)
		}
		extended = spanOf(3, 5).Extend(spanOf(4, 8))
		if extended.Start.Offset != 3 || extended.End.Offset != 8 {
			t.Errorf("Expected 3..8, got %d..%d", extended.Start.Offset, extended.End.Offset)
		}
		extended = spanOf(0, 8).Extend(spanOf(3, 5))
		if extended.Start.Offset != 0 || extended.End.Offset != 8 {
			t.Errorf("Expected 0..8, got %d..%d", extended.Start.Offset, extended.End.Offset)
		}
	})
}

func TestErrorReporter(t *testing.T) {
	file := util.NewParseSourceFile("hello", "test.soy")
	at := util.NewParseSourceSpan(file.LocationAt(2), file.LocationAt(4), nil, nil)

	t.Run("should collect diagnostics in order", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		reporter.Report(at, "first %s", "problem")
		reporter.Warn(at, "a warning")
		reporter.Report(at, "second problem")

		errs := reporter.Errors()
		if len(errs) != 3 {
			t.Fatalf("Expected 3 diagnostics, got %d", len(errs))
		}
		if errs[0].Msg != "first problem" || errs[2].Msg != "second problem" {
			t.Errorf("Unexpected messages %q, %q", errs[0].Msg, errs[2].Msg)
		}
		if errs[0].Level != util.ParseErrorLevelError {
			t.Error("Expected an error level diagnostic")
		}
		if errs[1].Level != util.ParseErrorLevelWarning {
			t.Error("Expected a warning level diagnostic")
		}
	})

	t.Run("should not count warnings as errors", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		reporter.Warn(at, "only a warning")
		if reporter.HasErrors() {
			t.Error("Expected no errors")
		}
	})

	t.Run("should answer errors since a checkpoint", func(t *testing.T) {
		reporter := util.NewErrorReporter()
		reporter.Report(at, "before")
		cp := reporter.Checkpoint()
		if reporter.ErrorsSince(cp) {
			t.Error("Expected no errors after the checkpoint")
		}
		reporter.Warn(at, "warning after")
		if reporter.ErrorsSince(cp) {
			t.Error("Expected a warning not to trip the checkpoint")
		}
		reporter.Report(at, "after")
		if !reporter.ErrorsSince(cp) {
			t.Error("Expected an error after the checkpoint")
		}
	})

	t.Run("should panic on report when exploding", func(t *testing.T) {
		reporter := util.NewExplodingErrorReporter()
		reporter.Warn(at, "warnings are fine")
		defer func() {
			recovered := recover()
			if recovered == nil {
				t.Fatal("Expected a panic")
			}
			err, ok := recovered.(*util.ParseError)
			if !ok {
				t.Fatalf("Expected a *ParseError, got %T", recovered)
			}
			if err.Msg != "boom" {
				t.Errorf("Expected %q, got %q", "boom", err.Msg)
			}
		}()
		reporter.Report(at, "boom")
	})
}

func TestParseError_Messages(t *testing.T) {
	file := util.NewParseSourceFile("hello", "test.soy")
	start := file.LocationAt(2)
	end := file.LocationAt(4)

	t.Run("should point into the source", func(t *testing.T) {
		err := util.NewParseError(util.NewParseSourceSpan(start, end, nil, nil), "boom")
		expected := `boom ("he[ERROR ->]llo"): test.soy@0:2`
		if got := err.Error(); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})

	t.Run("should mark warnings in the context", func(t *testing.T) {
		warn := util.NewParseWarning(util.NewParseSourceSpan(start, end, nil, nil), "watch out")
		expected := `watch out ("he[WARNING ->]llo"): test.soy@0:2`
		if got := warn.String(); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})

	t.Run("should append span details", func(t *testing.T) {
		details := "while scanning a tag"
		err := util.NewParseError(util.NewParseSourceSpan(start, end, nil, &details), "boom")
		expected := `boom ("he[ERROR ->]llo"): test.soy@0:2, while scanning a tag`
		if got := err.String(); got != expected {
			t.Errorf("Expected %q, got %q", expected, got)
		}
	})

	t.Run("should fall back to the bare message without a span", func(t *testing.T) {
		err := util.NewParseError(nil, "boom")
		if got := err.Error(); got != "boom" {
			t.Errorf("Expected %q, got %q", "boom", got)
		}
	})
}
