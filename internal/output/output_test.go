package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if p := FromContext(WithPrinter(context.Background(), &buf)); p.Writer() != &buf {
		t.Error("FromContext should return the attached printer")
	}
	if p := FromContext(context.Background()); p.Writer() != os.Stdout {
		t.Error("FromContext without a printer should write to stdout")
	}
}

func TestPrinter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"print", func(p *Printer) { p.Print("Brew #", 9) }, "Brew #9"},
		{"printf", func(p *Printer) { p.Printf("✓ Added %s (#%d)\n", "Guji", 12) }, "✓ Added Guji (#12)\n"},
		{"println", func(p *Printer) { p.Println("Logged out."); p.Println() }, "Logged out.\n\n"},
		{"writer", func(p *Printer) { _, _ = p.Writer().Write([]byte("raw")) }, "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.print(New(&buf))
			if got := buf.String(); got != tt.want {
				t.Errorf("wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(&buf).JSON(map[string]int{"total": 2}); err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	want := "{\n  \"total\": 2\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("JSON() wrote %q, want %q", got, want)
	}
}
