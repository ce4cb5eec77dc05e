package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Alia5/keyswap/inspector"
	"github.com/Alia5/keyswap/internal/configpaths"
	"github.com/Alia5/keyswap/internal/layoutfile"
	"github.com/Alia5/keyswap/internal/log"
	"github.com/Alia5/keyswap/internal/server/api"
	"github.com/Alia5/keyswap/internal/server/api/auth"
	"github.com/Alia5/keyswap/internal/server/api/handler"
)

const keyFileName = "keyswap.key.txt"

type Server struct {
	LayoutSet         `embed:""`
	ApiServerConfig   api.ServerConfig `embed:"" prefix:"api."`
	ConnectionTimeout time.Duration    `help:"Per connection operation timeout" default:"30s" env:"KEYSWAP_CONNECTION_TIMEOUT"`
	KeyFile           string           `help:"File holding the API password; generated when missing (defaults to the config dir)" env:"KEYSWAP_KEY_FILE"`
	NoAuth            bool             `help:"Serve without a password" env:"KEYSWAP_NO_AUTH"`
	Watch             bool             `help:"Reload layout files when they change" default:"true" negatable:"" env:"KEYSWAP_WATCH"`

	// listening is called with the bound address once the API accepts connections.
	listening func(addr string)
}

// Run is called by Kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, wire log.WireLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, wire)
}

func (s *Server) StartServer(ctx context.Context, logger *slog.Logger, wire log.WireLogger) error {
	s.ApiServerConfig.ConnectionTimeout = s.ConnectionTimeout

	if s.ApiServerConfig.Addr == "" {
		return errors.New("API server address must be set (default :3243)")
	}

	if !s.NoAuth {
		pwd, err := s.password(logger)
		if err != nil {
			return err
		}
		s.ApiServerConfig.Password = pwd
	}

	var opts []inspector.Option
	if logger.Enabled(ctx, traceLevel) {
		opts = append(opts, inspector.WithLookupHook(traceLookups(logger)))
	}
	reloader, err := layoutfile.NewReloader(s.Layouts, s.LayoutFiles, logger, opts...)
	if err != nil {
		return fmt.Errorf("load layouts: %w", err)
	}
	defer func() { _ = reloader.Close() }()
	if s.Watch {
		if err := reloader.Watch(); err != nil {
			return err
		}
	}
	logger.Info("Starting keyswap server", "layouts", reloader.Inspector().Layouts())

	apiSrv := api.New(reloader, s.ApiServerConfig.Addr, s.ApiServerConfig, logger, wire)
	handler.RegisterAll(apiSrv.Router(), reloader, Version)

	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		return err
	}
	if s.listening != nil {
		s.listening(apiSrv.Addr())
	}

	<-ctx.Done()
	apiSrv.Close()
	return nil
}

// password reads the API password from the key file, generating and
// persisting a new one when the file does not exist yet.
func (s *Server) password(logger *slog.Logger) (string, error) {
	keyFilePath := s.KeyFile
	if keyFilePath == "" {
		dir, err := configpaths.DefaultConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve key file path: %w", err)
		}
		keyFilePath = filepath.Join(dir, keyFileName)
	}

	if pwd, err := os.ReadFile(keyFilePath); err == nil {
		if p := strings.TrimSpace(string(pwd)); p != "" {
			return p, nil
		}
		return "", fmt.Errorf("key file %s is empty", keyFilePath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}

	newPwd, err := auth.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate new API password: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyFilePath), 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir for key file: %w", err)
	}
	if err := os.WriteFile(keyFilePath, []byte(newPwd), 0o600); err != nil {
		return "", fmt.Errorf("failed to write new API password to file: %w", err)
	}
	logger.Info("Generated API server password", "path", keyFilePath)
	logger.Info("-------------------------------------")
	logger.Info("Your keyswap API server password is:")
	logger.Info("-------------------------------------")
	logger.Info(newPwd)
	logger.Info("-------------------------------------")
	logger.Info("You can change this password at any time by editing the file")
	return newPwd, nil
}
