package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/denkfabrik-neueMedien/sharp/internal/engine"
	"github.com/denkfabrik-neueMedien/sharp/internal/imaging"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut bool
		access  string
	)

	cmd := &cobra.Command{
		Use:   "info PATH...",
		Short: "Describe images: size, color interpretation, alpha, profile, orientation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mode := cfg.AccessMode()
			if access != "" {
				if mode, err = engine.ParseAccessMode(access); err != nil {
					return err
				}
			}

			loader := imaging.NewLoader()
			infos := make([]*imaging.ImageInfo, 0, len(args))
			for _, path := range args {
				info, err := imaging.LoadImageInfo(loader, path, mode)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				ctx.logger.Debug("image described", "path", path, "format", info.Format)
				infos = append(infos, info)
			}

			if jsonOut || !shouldRenderTable(cmd.OutOrStdout()) {
				if len(infos) == 1 {
					return writeJSON(cmd, infos[0])
				}
				return writeJSON(cmd, infos)
			}

			rows := make([][]string, 0, len(infos))
			for i, info := range infos {
				rows = append(rows, []string{
					args[i],
					info.Format.String(),
					fmt.Sprintf("%dx%d", info.Width, info.Height),
					info.Interpretation,
					strconv.Itoa(info.Bands),
					yesNo(info.HasAlpha),
					yesNo(info.HasProfile),
					info.Orientation.String(),
				})
			}
			headers := []string{"Path", "Format", "Size", "Space", "Bands", "Alpha", "Profile", "Orientation"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write JSON even when stdout is a terminal")
	cmd.Flags().StringVar(&access, "access", "", "Access mode: random or sequential (default from config)")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
