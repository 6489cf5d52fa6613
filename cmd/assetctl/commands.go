package main

import (
	"fmt"
	"os"
	"time"

	assetsbiz "github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/auth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) createFileCmd() *cobra.Command {
	var in assetsbiz.CreateFileInput

	cmd := &cobra.Command{
		Use:   "create-file",
		Short: "Create a file record, or refresh the asset path of an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, cleanup, err := c.useCases()
			if err != nil {
				return err
			}
			defer cleanup()

			file, err := uc.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "file name (unique)")
	cmd.Flags().StringVar(&in.AssetsPath, "path", "", "object storage path of the source asset")
	cmd.Flags().IntVar(&in.Type, "type", 0, "file type, only applied on first creation")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (c *cli) mergeCmd() *cobra.Command {
	var name, manifestPath string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge sections from a JSON manifest into a file",
		Long: `Reads a manifest of the form

  {"file": "chapter-1.txt", "sections": [{"originText": "...", "desc": "...", "status": 0}]}

A bare JSON array of sections is accepted as well. --file overrides the
manifest's file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			manifest, err := parseManifest(raw)
			if err != nil {
				return err
			}
			if name != "" {
				manifest.File = name
			}
			if manifest.File == "" {
				return fmt.Errorf("manifest names no file, pass --file")
			}

			return c.withFile(cmd.Context(), manifest.File, func(uc *assetsbiz.FileUseCase, file *assetsbiz.File) error {
				added, err := uc.MergeSections(cmd.Context(), file, manifest.Sections)
				if err != nil {
					return err
				}
				c.logger.Info("sections merged",
					zap.String("file", file.Name),
					zap.Int("candidates", len(manifest.Sections)),
					zap.Int("added", added))
				return printJSON(cmd.OutOrStdout(), map[string]int{"added": added})
			})
		},
	}

	cmd.Flags().StringVar(&name, "file", "", "target file name")
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "path to the JSON manifest")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func (c *cli) textCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Print the published text of a file, one section per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withFile(cmd.Context(), name, func(uc *assetsbiz.FileUseCase, file *assetsbiz.File) error {
				texts, err := uc.GetPublishedText(cmd.Context(), file)
				if err != nil {
					return err
				}
				for _, t := range texts {
					fmt.Fprintln(cmd.OutOrStdout(), t)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "file", "", "file name")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) sectionsCmd() *cobra.Command {
	var (
		name         string
		start, count int
	)

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "List a page of a file's sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withFile(cmd.Context(), name, func(uc *assetsbiz.FileUseCase, file *assetsbiz.File) error {
				sections, err := uc.GetSections(cmd.Context(), file, start, count)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), sections)
			})
		},
	}

	cmd.Flags().StringVar(&name, "file", "", "file name")
	cmd.Flags().IntVar(&start, "start", 0, "offset of the first section")
	cmd.Flags().IntVar(&count, "count", 0, "number of sections, 0 for all remaining")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (c *cli) contractCmd() *cobra.Command {
	var (
		name, user string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Assign up to --count unassigned sections of a file to a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withFile(cmd.Context(), name, func(uc *assetsbiz.FileUseCase, file *assetsbiz.File) error {
				updated, err := uc.ContractSections(cmd.Context(), file, user, count)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), updated.Contractors)
			})
		},
	}

	cmd.Flags().StringVar(&name, "file", "", "file name")
	cmd.Flags().StringVar(&user, "user", "", "user id")
	cmd.Flags().IntVar(&count, "count", 1, "maximum number of sections to assign")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var (
		user string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := auth.NewJWTManager(c.config.Auth.JWTSecret, c.config.Auth.JWTIssuer)
			token, err := manager.GenerateAccessToken(user, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user id placed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.AccessTokenDuration, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
