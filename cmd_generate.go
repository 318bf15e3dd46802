package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"product_copy_studio/catalog"
	"product_copy_studio/form"
	"product_copy_studio/generator"
	"product_copy_studio/studio"
)

var (
	genProduct     string
	genLanguages   []string
	genContentType string
	genBrandVoice  string
	genAudience    string
	genInfo        string
	genEvents      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate copy for one product and print it",
	Long: `Runs one generation without the HTTP layer. With --events every stream
event is printed as a JSON line; otherwise the final content per language.`,
	RunE: runGenerate,
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported target languages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, l := range catalog.Languages() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", l.Flag.Emoji, l.Code, l.Label)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genProduct, "product", "", "product name")
	generateCmd.Flags().StringSliceVar(&genLanguages, "languages", []string{catalog.DefaultLanguage}, "target language codes")
	generateCmd.Flags().StringVar(&genContentType, "content-type", string(catalog.DefaultContentType), "Professional, Casual or Technical")
	generateCmd.Flags().StringVar(&genBrandVoice, "brand-voice", "", "brand voice")
	generateCmd.Flags().StringVar(&genAudience, "audience", "", "target audience")
	generateCmd.Flags().StringVar(&genInfo, "info", "", "additional information")
	generateCmd.Flags().BoolVar(&genEvents, "events", false, "print every stream event")
	_ = generateCmd.MarkFlagRequired("product")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	_, logger, gen, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ct, err := catalog.ParseContentType(genContentType)
	if err != nil {
		return err
	}
	snap := form.Snapshot{
		ProductName:       genProduct,
		AdditionalInfo:    genInfo,
		ContentType:       ct,
		BrandVoice:        genBrandVoice,
		TargetAudience:    genAudience,
		SelectedLanguages: genLanguages,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, err := studio.New(gen, logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	err = orch.Run(ctx, snap, func(u studio.Update) {
		if genEvents {
			_ = enc.Encode(u.Event)
		}
	})
	if err != nil {
		return err
	}
	if genEvents {
		return nil
	}
	return printContent(out, orch)
}

func printContent(out io.Writer, orch *studio.Orchestrator) error {
	content, _ := orch.Snapshot()
	for _, lang := range content.Languages() {
		c := content[lang]
		if _, err := fmt.Fprintf(out, "== %s ==\n", lang); err != nil {
			return err
		}
		for _, sec := range generator.Sections() {
			fmt.Fprintf(out, "\n%s\n%s\n", sec.Title(), c.Get(sec))
		}
		fmt.Fprintln(out)
	}
	return nil
}
