package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	tomlarchive "github.com/sahifabooks/orderbot/internal/adapters/archive/toml"
	xlsxexport "github.com/sahifabooks/orderbot/internal/adapters/export/xlsx"
	receiptrender "github.com/sahifabooks/orderbot/internal/adapters/render/receipt"
	"github.com/sahifabooks/orderbot/internal/application"
	"github.com/sahifabooks/orderbot/internal/ports"
)

type app struct {
	service *application.SessionService
	archive ports.OrderArchive
	logger  *log.Logger
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := viper.New()
	cfg.SetDefault("session.stop_keyword", "/stop")
	cfg.SetDefault("receipt.title", "SAHIFABOOKS")
	cfg.SetDefault("export.dir", filepath.Join(homeDir, ".orderbot"))
	cfg.SetDefault("validation.reject_negative", false)

	archive, err := tomlarchive.NewArchive(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire order archive: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	service := application.NewSessionService(
		xlsxexport.NewSink(cfg.GetString("export.dir")),
		archive,
		receiptrender.NewRenderer(),
		ports.SystemClock{},
		logger,
		application.Options{
			StopKeyword:    cfg.GetString("session.stop_keyword"),
			ReceiptTitle:   cfg.GetString("receipt.title"),
			RejectNegative: cfg.GetBool("validation.reject_negative"),
		},
	)

	return &app{service: service, archive: archive, logger: logger}, nil
}
