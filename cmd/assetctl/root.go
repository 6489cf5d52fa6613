package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	assetsbiz "github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	assetsdata "github.com/lk2023060901/ai-translate-backend/internal/assets/data"
	"github.com/lk2023060901/ai-translate-backend/internal/conf"
	"github.com/lk2023060901/ai-translate-backend/internal/data"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds state shared by every subcommand
type cli struct {
	configFile string
	verbose    bool

	config *conf.Config
	logger *logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "assetctl",
		Short:         "Manage translation files and sections",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := conf.LoadConfig(c.configFile)
			if err != nil {
				return err
			}
			if c.verbose {
				config.Log.Level = "debug"
			}
			// 终端下使用可读格式
			config.Log.Format = "console"

			log, err := logger.New(&config.Log)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.config = config
			c.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "configs/config.yaml", "config file path")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.createFileCmd(),
		c.mergeCmd(),
		c.textCmd(),
		c.sectionsCmd(),
		c.contractCmd(),
		c.tokenCmd(),
	)

	return root
}

// useCases 连接存储并组装用例，返回的 cleanup 关闭所有连接
func (c *cli) useCases() (*assetsbiz.FileUseCase, func(), error) {
	d, cleanup, err := data.NewData(c.config, c.logger)
	if err != nil {
		return nil, nil, err
	}

	sections := assetsbiz.NewSectionUseCase(assetsdata.NewSectionRepo(d.DB), c.logger)
	files := assetsbiz.NewFileUseCase(
		assetsdata.NewFileRepo(d.DB),
		sections,
		assetsdata.NewAssetStore(d.MinIOClient),
		c.logger,
	)
	return files, cleanup, nil
}

// withFile 按名称加载文件后执行 fn
func (c *cli) withFile(ctx context.Context, name string, fn func(uc *assetsbiz.FileUseCase, file *assetsbiz.File) error) error {
	uc, cleanup, err := c.useCases()
	if err != nil {
		return err
	}
	defer cleanup()

	file, err := uc.GetByName(ctx, name)
	if err != nil {
		c.logger.Debug("file lookup failed", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("file %q: %w", name, err)
	}
	return fn(uc, file)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
