package chart

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danijuhaeni22/idx-signal-web/internal/calculator"
	"github.com/danijuhaeni22/idx-signal-web/internal/model"
)

type stubRenderer struct {
	name      string
	available bool
}

func (s *stubRenderer) Name() string                  { return s.name }
func (s *stubRenderer) Available() bool               { return s.available }
func (s *stubRenderer) Render(*Data, io.Writer) error { return nil }

func TestSelect_FirstAvailableWins(t *testing.T) {
	a := &stubRenderer{name: "a", available: false}
	b := &stubRenderer{name: "b", available: true}
	c := &stubRenderer{name: "c", available: true}

	r, err := Select(a, b, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "b" {
		t.Errorf("expected first available strategy b, got %s", r.Name())
	}
}

func TestSelect_NoneAvailable(t *testing.T) {
	_, err := Select(&stubRenderer{name: "a"}, &stubRenderer{name: "b"})
	if !errors.Is(err, ErrNoRenderer) {
		t.Fatalf("expected ErrNoRenderer, got %v", err)
	}
}

func testBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	price := 100.0
	for i := range bars {
		if i%2 == 0 {
			price += 2
		} else {
			price -= 1
		}
		bars[i] = model.Bar{
			Time:   int64(1700000000 + i*86400),
			Open:   price - 1,
			High:   price + 2,
			Low:    price - 2,
			Close:  price,
			Volume: float64(1000 + 100*i),
		}
	}
	return bars
}

func testData(t *testing.T, n int) *Data {
	t.Helper()
	bars := testBars(n)
	ma20, err := calculator.MovingAverage(bars, 20)
	if err != nil {
		t.Fatal(err)
	}
	ma50, err := calculator.MovingAverage(bars, 50)
	if err != nil {
		t.Fatal(err)
	}
	return Build("BBCA.JK", bars, ma20, ma50)
}

func TestPNGRenderer(t *testing.T) {
	r := NewPNGRenderer()
	if !r.Available() {
		t.Fatal("png renderer must always be available")
	}

	var buf bytes.Buffer
	if err := r.Render(testData(t, 60), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}

	if err := r.Render(&Data{Ticker: "X"}, io.Discard); err == nil {
		t.Error("expected error for empty bar set")
	}
}

func TestTermRenderer_NotAvailableOffTTY(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := NewTermRenderer(f)
	if r.Available() {
		t.Error("plain file must not probe as a terminal")
	}
	if NewTermRenderer(nil).Available() {
		t.Error("nil tty must not probe as a terminal")
	}
}

func TestTermRenderer_MalformedBarStaysOnGrid(t *testing.T) {
	bars := testBars(10)
	bars[4].Close = bars[4].High + 50 // close above its own high
	bars[7].Open = bars[7].Low - 50   // open below its own low

	var buf bytes.Buffer
	if err := NewTermRenderer(nil).Render(Build("BBCA.JK", bars, nil, nil), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "vol") {
		t.Errorf("render truncated:\n%s", buf.String())
	}
}

func TestTermRenderer_DrawsCandlesAndVolume(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var buf bytes.Buffer
	r := NewTermRenderer(f) // falls back to 80 columns off-TTY
	if err := r.Render(testData(t, 60), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "BBCA") {
		t.Errorf("missing ticker header:\n%s", out)
	}
	if !strings.Contains(out, "vol") {
		t.Errorf("missing volume row:\n%s", out)
	}
	if !strings.ContainsAny(out, "█░") {
		t.Errorf("missing candle bodies:\n%s", out)
	}
}
