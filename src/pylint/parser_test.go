package pylint

import (
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Diagnostic
		ok       bool
	}{
		{
			name: "diagnostic with symbol",
			line: "gnomad_qc/v3/release.py:42:8: E1101: Instance of 'Table' has no 'rows' member (no-member)",
			expected: Diagnostic{
				Path:    "gnomad_qc/v3/release.py",
				Line:    42,
				Column:  8,
				Code:    "E1101",
				Symbol:  "no-member",
				Message: "Instance of 'Table' has no 'rows' member",
			},
			ok: true,
		},
		{
			name: "diagnostic without symbol",
			line: "utils.py:1:0: C0114: Missing module docstring",
			expected: Diagnostic{
				Path:    "utils.py",
				Line:    1,
				Column:  0,
				Code:    "C0114",
				Message: "Missing module docstring",
			},
			ok: true,
		},
		{
			name: "parenthesized text that is not a symbol stays in the message",
			line: "app.py:10:4: W0212: Access to a protected member (see style guide)",
			expected: Diagnostic{
				Path:    "app.py",
				Line:    10,
				Column:  4,
				Code:    "W0212",
				Message: "Access to a protected member (see style guide)",
			},
			ok: true,
		},
		{
			name: "trailing carriage return stripped",
			line: "a.py:3:0: C0301: Line too long (120/100) (line-too-long)\r",
			expected: Diagnostic{
				Path:    "a.py",
				Line:    3,
				Column:  0,
				Code:    "C0301",
				Symbol:  "line-too-long",
				Message: "Line too long (120/100)",
			},
			ok: true,
		},
		{
			name: "module header skipped",
			line: "************* Module gnomad_qc.v3.release",
			ok:   false,
		},
		{
			name: "score summary skipped",
			line: "Your code has been rated at 8.50/10 (previous run: 8.42/10, +0.08)",
			ok:   false,
		},
		{
			name: "empty line skipped",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if !ok {
				return
			}
			if d != tt.expected {
				t.Errorf("ParseLine(%q)\n  got:  %+v\n  want: %+v", tt.line, d, tt.expected)
			}
		})
	}
}

func TestParse_Text(t *testing.T) {
	output := `************* Module release
release.py:12:0: C0103: Constant name "x" doesn't conform to UPPER_CASE naming style (invalid-name)
release.py:40:4: E0602: Undefined variable 'ht' (undefined-variable)

Your code has been rated at 6.00/10
`

	diags, err := Parse([]byte(output))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %+v", len(diags), diags)
	}
	if diags[0].Code != "C0103" || diags[1].Code != "E0602" {
		t.Errorf("unexpected codes: %s, %s", diags[0].Code, diags[1].Code)
	}
	if diags[1].Symbol != "undefined-variable" {
		t.Errorf("expected symbol undefined-variable, got %q", diags[1].Symbol)
	}
}

func TestParse_JSON(t *testing.T) {
	output := `[
  {
    "type": "error",
    "module": "release",
    "path": "release.py",
    "line": 40,
    "column": 4,
    "message-id": "E0602",
    "symbol": "undefined-variable",
    "message": "Undefined variable 'ht'"
  }
]`

	diags, err := Parse([]byte(output))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}

	expected := Diagnostic{
		Path:    "release.py",
		Line:    40,
		Column:  4,
		Code:    "E0602",
		Symbol:  "undefined-variable",
		Message: "Undefined variable 'ht'",
	}
	if diags[0] != expected {
		t.Errorf("got %+v, want %+v", diags[0], expected)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("[not json")); err == nil {
		t.Error("expected error for malformed JSON output")
	}
}

func TestParse_Empty(t *testing.T) {
	diags, err := Parse([]byte("  \n "))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %d", len(diags))
	}
}

func TestLocation(t *testing.T) {
	d := Diagnostic{Path: "a/b.py", Line: 7, Column: 2}
	if got := d.Location(); got != "a/b.py:7:2" {
		t.Errorf("Location() = %q", got)
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"F0001", SeverityFatal},
		{"E1101", SeverityError},
		{"W0611", SeverityWarning},
		{"R0914", SeverityRefactor},
		{"C0114", SeverityConvention},
		{"I0011", SeverityInfo},
		{"", SeverityInfo},
	}

	for _, tt := range tests {
		d := Diagnostic{Code: tt.code}
		if got := d.Severity(); got != tt.expected {
			t.Errorf("Severity(%q) = %q, want %q", tt.code, got, tt.expected)
		}
	}
}

func TestWeight_Ordering(t *testing.T) {
	order := []string{SeverityFatal, SeverityError, SeverityWarning, SeverityRefactor, SeverityConvention, SeverityInfo}
	for i := 1; i < len(order); i++ {
		if Weight(order[i-1]) <= Weight(order[i]) {
			t.Errorf("Weight(%s) should exceed Weight(%s)", order[i-1], order[i])
		}
	}
}
