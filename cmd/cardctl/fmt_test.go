package main

import (
	"testing"
)

func TestFmtCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		width          int
		decimals       int
		flags          []string
		spec           string
		isInt          bool
		scale          int
		wantErr        bool
		wantContain    []string
		wantNotContain []string
		wantJSON       bool
	}{
		{
			name:        "fixed",
			args:        []string{"3.14159"},
			width:       8,
			decimals:    3,
			flags:       []string{},
			wantContain: []string{"[   3.142]  len=5 fixed"},
		},
		{
			name:        "several values",
			args:        []string{"1.5", "-2.25"},
			width:       8,
			decimals:    2,
			flags:       []string{},
			wantContain: []string{"[    1.50]  len=4 fixed", "[   -2.25]  len=5 fixed"},
		},
		{
			name:        "packed spec",
			args:        []string{"3.14159"},
			spec:        "0x207",
			wantContain: []string{"[    3.14]  len=4 fixed"},
		},
		{
			name:        "packed spec with plus",
			args:        []string{"3.14159"},
			spec:        "0x20207",
			wantContain: []string{"[   +3.14]  len=5 fixed"},
		},
		{
			name:        "hex pattern",
			args:        []string{"1.0"},
			width:       16,
			decimals:    0,
			flags:       []string{"hex"},
			wantContain: []string{"[3FF0000000000000]", "hex"},
		},
		{
			name:        "nothing fits",
			args:        []string{"123456789"},
			width:       2,
			decimals:    0,
			flags:       []string{},
			wantContain: []string{"[**]"},
		},
		{
			name:        "scaled integer",
			args:        []string{"40"},
			width:       8,
			decimals:    2,
			flags:       []string{},
			isInt:       true,
			scale:       4,
			wantContain: []string{"[    2.50]  len=4 fixed"},
		},
		{
			name:        "json",
			args:        []string{"3.14159"},
			width:       8,
			decimals:    3,
			flags:       []string{},
			wantJSON:    true,
			wantContain: []string{`"field": "   3.142"`, `"mode": "fixed"`},
			wantNotContain: []string{
				"len=",
			},
		},
		{
			name:    "invalid value",
			args:    []string{"abc"},
			width:   8,
			flags:   []string{},
			wantErr: true,
		},
		{
			name:    "invalid integer",
			args:    []string{"1.5"},
			width:   8,
			flags:   []string{},
			isInt:   true,
			wantErr: true,
		},
		{
			name:    "unknown flag name",
			args:    []string{"1"},
			flags:   []string{"bogus"},
			wantErr: true,
		},
		{
			name:    "reserved bits in packed spec",
			args:    []string{"1"},
			spec:    "0x87",
			wantErr: true,
		},
		{
			name:    "hex and octal together",
			args:    []string{"1"},
			spec:    "0x67",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals()
			jsonOut = tt.wantJSON
			fmtWidth = tt.width
			fmtDecimals = tt.decimals
			fmtFlags = tt.flags
			fmtSpec = tt.spec
			fmtInt = tt.isInt
			fmtScale = tt.scale

			output, err := captureOutput(t, func() error {
				return runFmt(tt.args)
			})

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}

func TestFmtCommand_OverflowIsNotAnError(t *testing.T) {
	resetGlobals()
	fmtWidth, fmtDecimals, fmtFlags = 2, 0, []string{}

	_, err := captureOutput(t, func() error {
		return runFmt([]string{"1e300"})
	})
	if err != nil {
		t.Errorf("overflow should only be reported, got %v", err)
	}
}

func TestFmtCommand_ConfigDefaults(t *testing.T) {
	resetGlobals()
	cfg.Format.Width = 6
	cfg.Format.Decimals = 1
	cfg.Format.Flags = nil

	output, err := captureOutput(t, func() error {
		return runFmt([]string{"2.25"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertContains(t, output, []string{"[   2.3]  len=3 fixed"})
}
