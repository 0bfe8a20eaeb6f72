package profile

import "testing"

func TestStart_Disabled(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"empty", nil},
		{"no mode", []Option{WithDir(t.TempDir()), WithQuiet(true)}},
		{"unknown", []Option{WithMode("bogus"), WithDir(t.TempDir())}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Start(tt.opts...)
			if s == nil {
				t.Fatal("Start returned nil")
			}

			s.Stop()
		})
	}
}

func TestOptions(t *testing.T) {
	var p Profiler
	for _, opt := range []Option{
		WithMode("cpu"), WithDir("/tmp/x"), WithQuiet(true),
	} {
		p = opt(p)
	}

	want := Profiler{Mode: "cpu", Dir: "/tmp/x", Quiet: true}
	if p != want {
		t.Errorf("options = %+v, want %+v", p, want)
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if Enabled != (len(modes) > 0) {
		t.Errorf("Enabled = %v with %d modes", Enabled, len(modes))
	}
}
