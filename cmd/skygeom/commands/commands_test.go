package commands

import (
	"bytes"
	"strings"
	"testing"
)

func defaultConfig() Config {
	return Config{Res: 1, DecCut: 90, Layout: "fullsky", LogLevel: "warn"}
}

func run(t *testing.T, cfg Config, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(cfg)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCommands(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		expect []string
	}{
		{"fullsky geometry", []string{"geometry"}, []string{"shape  360 x 181", "crpix  180.5 91", "cdelt  -1 1", "crval  0.5 0"}},
		{"band geometry", []string{"geometry", "--layout", "band", "--dec-cut", "30"}, []string{"shape  360 x 60", "crpix  180.5 31"}},
		{"half degree", []string{"geometry", "--res", "0.5"}, []string{"shape  720 x 361"}},
		{"pix2sky corner", []string{"pix2sky", "0", "0"}, []string{"180.000000 -90.000000"}},
		{"pix2sky fractional", []string{"pix2sky", "22", "11.5"}, []string{"158.000000 -78.500000"}},
		{"sky2pix origin", []string{"sky2pix", "0", "0"}, []string{"180.000000 90.000000"}},
		{"sky2pix band", []string{"sky2pix", "--layout", "band", "--dec-cut", "30", "--", "0", "-29"}, []string{"180.000000 1.000000"}},
		{"healpix order 1", []string{"healpix-res", "1"}, []string{"res    29.316", "shape  12 x 7"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := run(t, defaultConfig(), tc.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tc.expect {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestPosmapCommand(t *testing.T) {
	out, _, err := run(t, defaultConfig(), "posmap", "--res", "30", "--every", "5", "--workers", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// columns 0, 5, 10 of 12 and rows 0, 5 of 7
	if len(lines) != 6 {
		t.Fatalf("expected 6 sampled pixels, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "0 0 ") || !strings.HasSuffix(lines[0], " -90.000000") {
		t.Errorf("expected the first sample at the south pole, got %q", lines[0])
	}
}

func TestCommandErrors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		expect string
	}{
		{"unknown layout", []string{"geometry", "--layout", "healpix"}, "expected one of band, fullsky"},
		{"bad resolution", []string{"geometry", "--res", "0"}, "build fullsky geometry"},
		{"empty band", []string{"geometry", "--layout", "band", "--dec-cut", "0"}, "build band geometry"},
		{"off the map", []string{"pix2sky", "0", "200"}, "pix2sky"},
		{"not a number", []string{"sky2pix", "east", "0"}, "argument 1"},
		{"bad log level", []string{"geometry", "--log-level", "loud"}, "log level"},
		{"bad sampling", []string{"posmap", "--every", "0"}, "--every"},
		{"fractional order", []string{"healpix-res", "1.5"}, "non-negative integer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := run(t, defaultConfig(), tc.args...)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.expect) {
				t.Errorf("expected error to mention %q, got %v", tc.expect, err)
			}
		})
	}
}

func TestDebugLogging(t *testing.T) {
	_, errOut, err := run(t, defaultConfig(), "geometry", "--log-level", "debug")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "skymap: full-sky geometry") {
		t.Errorf("expected debug log on stderr, got:\n%s", errOut)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SKYGEOM_RES", "0.5")
	t.Setenv("SKYGEOM_LAYOUT", "band")
	t.Setenv("SKYGEOM_DEC_CUT", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Res != 0.5 || cfg.Layout != "band" || cfg.DecCut != 45 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Workers != 0 || cfg.LogLevel != "warn" {
		t.Errorf("expected defaults for unset variables, got %+v", cfg)
	}

	out, _, err := run(t, cfg, "geometry")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "shape  720 x 180") {
		t.Errorf("expected environment band geometry, got:\n%s", out)
	}

	t.Setenv("SKYGEOM_WORKERS", "many")
	if _, err := LoadConfig(); err == nil {
		t.Errorf("expected an error for a non-numeric worker count")
	}
}
