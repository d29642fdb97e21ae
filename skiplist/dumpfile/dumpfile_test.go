package dumpfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLine(t *testing.T) {
	var f Format
	tests := []struct {
		line       string
		key, value string
		ok         bool
	}{
		{"1:a", "1", "a", true},
		{"12:http://x:80", "12", "http://x:80", true},
		{"no delimiter", "", "", false},
		{":value", "", "", false},
		{"key:", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := f.ParseLine(tt.line)
		if key != tt.key || value != tt.value || ok != tt.ok {
			t.Errorf("ParseLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, key, value, ok, tt.key, tt.value, tt.ok)
		}
	}
}

func TestParseLineCustomDelimiter(t *testing.T) {
	f := Format{Delimiter: "=>"}
	key, value, ok := f.ParseLine("a=>b=>c")
	if !ok || key != "a" || value != "b=>c" {
		t.Errorf("ParseLine = (%q, %q, %v), want (\"a\", \"b=>c\", true)", key, value, ok)
	}
}

func TestAppendRecordRejects(t *testing.T) {
	var f Format
	bad := [][2]string{
		{"a:b", "v"},
		{"k", "line\nbreak"},
		{"k", "cr\r"},
		{"", "v"},
		{"k", ""},
	}
	for _, kv := range bad {
		buf, err := f.AppendRecord(nil, kv[0], kv[1])
		if !errors.Is(err, ErrUnrepresentable) {
			t.Errorf("AppendRecord(%q, %q) err = %v, want ErrUnrepresentable", kv[0], kv[1], err)
		}
		if len(buf) != 0 {
			t.Errorf("AppendRecord(%q, %q) wrote %q on error", kv[0], kv[1], buf)
		}
	}

	buf, err := f.AppendRecord(nil, "k", "v:w")
	if err != nil || string(buf) != "k:v:w\n" {
		t.Errorf("AppendRecord(k, v:w) = (%q, %v), want (\"k:v:w\\n\", nil)", buf, err)
	}
}

func TestReadSkipsMalformed(t *testing.T) {
	var f Format
	input := "1:a\ngarbage\n:x\n3:\n7:c\n"
	var got []string
	skipped, err := f.Read(strings.NewReader(input), func(k, v string) {
		got = append(got, k+"="+v)
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
	if strings.Join(got, ",") != "1=a,7=c" {
		t.Errorf("records = %v, want [1=a 7=c]", got)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store", "dumpFile")
	if err := WriteFile(path, []byte("1:a\n2:b\n3:c\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("9:z\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "9:z\n" {
		t.Errorf("file = %q, want %q", data, "9:z\n")
	}
}

func TestReadFileMissing(t *testing.T) {
	var f Format
	_, err := f.ReadFile(filepath.Join(t.TempDir(), "nope"), func(string, string) {})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile err = %v, want os.ErrNotExist", err)
	}
}

func TestCodecDecode(t *testing.T) {
	c := NewCodec(Int, String)
	k, v, err := c.Decode("42", "answer")
	if err != nil || k != 42 || v != "answer" {
		t.Errorf("Decode = (%d, %q, %v), want (42, \"answer\", nil)", k, v, err)
	}
	if _, _, err := c.Decode("x", "answer"); err == nil {
		t.Error("Decode(\"x\") succeeded, want error")
	}

	fc := NewCodec(Int64, Float64)
	buf, err := fc.Append(Format{}, nil, -3, 0.25)
	if err != nil || string(buf) != "-3:0.25\n" {
		t.Errorf("Append = (%q, %v), want (\"-3:0.25\\n\", nil)", buf, err)
	}
}

func TestCodecCheck(t *testing.T) {
	c := NewCodec(String, String)
	if err := c.Check(Format{}, "k", "v:w"); err != nil {
		t.Errorf("Check(k, v:w) = %v, want nil", err)
	}
	for _, kv := range [][2]string{{"b", ""}, {"a:b", "v"}, {"k", "x\ny"}} {
		if err := c.Check(Format{}, kv[0], kv[1]); !errors.Is(err, ErrUnrepresentable) {
			t.Errorf("Check(%q, %q) = %v, want ErrUnrepresentable", kv[0], kv[1], err)
		}
	}
	if err := c.Check(Format{Delimiter: "\t"}, "a:b", "v"); err != nil {
		t.Errorf("Check with tab delimiter = %v, want nil", err)
	}
}
