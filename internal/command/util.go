package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/justrob12/seclab/internal/config"
	"github.com/justrob12/seclab/internal/sec"
	"github.com/justrob12/seclab/internal/storage"
)

type configKey struct{}

// initialSecretCap fits any bcrypt-acceptable password without regrowing.
const initialSecretCap = 128

// prompt reads a line from the command's input. The label is only shown
// when that input is a terminal; masked input is not echoed.
func prompt(cmd *cobra.Command, label string, mask bool) ([]byte, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		if _, err := io.WriteString(cmd.ErrOrStderr(), label); err != nil {
			return nil, err
		}
		if mask {
			return term.ReadPassword(int(file.Fd()))
		}
	}
	return readLineFrom(in)
}

// promptSecret reads a masked line into a Secret. The caller must zero it.
func promptSecret(cmd *cobra.Command, label string) (sec.Secret, error) {
	line, err := prompt(cmd, label, true)
	if err != nil {
		clear(line)
		return nil, err
	}
	return sec.Secret(line), nil
}

// readLineFrom is cloned from term.readPasswordLine. The buffer is scrubbed
// whenever it has to grow so no stale copy of the line is left behind.
func readLineFrom(r io.Reader) ([]byte, error) {
	var buf [1]byte
	ret := make([]byte, 0, initialSecretCap)

	for {
		n, err := r.Read(buf[:])
		if n > 0 {
			switch buf[0] {
			case '\b':
				if len(ret) > 0 {
					ret[len(ret)-1] = 0
					ret = ret[:len(ret)-1]
				}
			case '\n':
				if runtime.GOOS != "windows" {
					return ret, nil
				}
				// otherwise ignore \n
			case '\r':
				if runtime.GOOS == "windows" {
					return ret, nil
				}
				// otherwise ignore \r
			default:
				ret = appendScrubbed(ret, buf[0])
			}
			buf[0] = 0
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(ret) > 0 {
				return ret, nil
			}
			return ret, err
		}
	}
}

func appendScrubbed(buf []byte, b byte) []byte {
	if len(buf) < cap(buf) {
		return append(buf, b)
	}
	grown := make([]byte, len(buf), 2*cap(buf)+1)
	copy(grown, buf)
	clear(buf)
	return append(grown, b)
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}

func getConfig(ctx context.Context) (*config.Config, *slog.Logger, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, nil, errors.New("config file resolution failed")
	}
	return cfg, slog.Default(), nil
}

func loadConfig(ctx context.Context) (*config.Config, *slog.Logger, storage.Store, error) {
	cfg, logger, err := getConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := storage.NewDB(ctx, cfg.DBFilepath, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, store, nil
}
