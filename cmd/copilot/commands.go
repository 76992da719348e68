package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"copilot/internal/config"
	"copilot/internal/domain"
	"copilot/internal/repository/sqlstore"
	"copilot/internal/service"
)

var (
	standardFlag string
	formatFlag   string
	outFlag      string
	templateFlag string
	languageFlag string
	limitFlag    int
)

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "Audit a requirement document against a compliance standard",
	Long: `Extracts the text of a PDF, DOCX or TXT requirement document and has the
model audit it as an expert in the chosen standard. Findings are printed with
their severity; --format writes the report as pdf, docx, json, txt or md.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var testCasesCmd = &cobra.Command{
	Use:   "testcases FILE",
	Short: "Generate test cases from a requirement document",
	Args:  cobra.ExactArgs(1),
	RunE:  runTestCases,
}

var synthCmd = &cobra.Command{
	Use:   "synth [PROMPT]",
	Short: "Generate a synthetic patient dataset",
	Long: `Generates synthetic records from a free-text prompt, or from a named
template (see "copilot templates") when no prompt is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSynth,
}

var askCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask a single regulatory question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var piiCmd = &cobra.Command{
	Use:   "pii TEXT",
	Short: "Find personal data in text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPII,
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe FILE",
	Short: "Transcribe a recorded question",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscribe,
}

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "List compliance standards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, s := range app.Catalog.Standards() {
			fmt.Fprintf(out, "%s  %s\n    %s\n", titleStyle.Render(s.Key), s.Name, mutedStyle.Render(s.Description))
		}
		return nil
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List synthetic-data templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		group := ""
		for _, t := range app.Catalog.Templates() {
			if t.Group != group {
				group = t.Group
				fmt.Fprintln(out, titleStyle.Render(group))
			}
			fmt.Fprintf(out, "  %-28s %s\n", t.Key, t.Name)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history COLLECTION",
	Short: "Show recent records (scan_history, test_suites, synthetic_datasets)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var envCmd = &cobra.Command{
	Use:         "env",
	Short:       "List the environment variables copilot reads",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"bootstrap": "skip"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range config.EnvNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	scanCmd.Flags().StringVarP(&standardFlag, "standard", "s", "", "Standard key or name (default: first standard)")
	for _, c := range []*cobra.Command{scanCmd, testCasesCmd, synthCmd} {
		c.Flags().StringVarP(&formatFlag, "format", "f", "", "Write an export in this format")
		c.Flags().StringVarP(&outFlag, "out", "o", "", "Export path (default: generated file name)")
	}
	synthCmd.Flags().StringVarP(&templateFlag, "template", "t", "", "Template key used when no prompt is given")
	transcribeCmd.Flags().StringVarP(&languageFlag, "language", "l", "", "BCP-47 language code (default en-IN)")
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "Number of records")

	rootCmd.AddCommand(piiCmd, transcribeCmd)
}

func readUpload(path string) (service.UploadInput, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return service.UploadInput{}, err
	}
	return service.UploadInput{FileName: filepath.Base(path), Content: content}, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	upload, err := readUpload(args[0])
	if err != nil {
		return err
	}
	result, err := app.Compliance.Scan(cmd.Context(), sess, service.ScanInput{Upload: upload, Standard: standardFlag})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	std, _ := app.Catalog.Standard(result.Standard)
	fmt.Fprintln(out, titleStyle.Render("Compliance Report: "+result.SourceName+" ("+std.Name+")"))
	fmt.Fprintln(out)
	writeFindings(out, result.Findings, result.Summary)

	if formatFlag == "" {
		return nil
	}
	file, err := app.Exports.Findings(sess, domain.ExportFormat(strings.ToLower(formatFlag)))
	if err != nil {
		return err
	}
	return writeExport(out, file)
}

func runTestCases(cmd *cobra.Command, args []string) error {
	upload, err := readUpload(args[0])
	if err != nil {
		return err
	}
	suite, err := app.TestCases.Generate(cmd.Context(), sess, upload)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeTable(out, suite.Table)
	m := suite.Metrics
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("Total: %d  Positive: %d  Negative: %d  Edge: %d", m.Total, m.Positive, m.Negative, m.Edge)))

	if formatFlag == "" {
		return nil
	}
	file, err := app.Exports.TestCases(sess, domain.ExportFormat(strings.ToLower(formatFlag)))
	if err != nil {
		return err
	}
	return writeExport(out, file)
}

func runSynth(cmd *cobra.Command, args []string) error {
	input := service.SyntheticInput{Template: templateFlag}
	if len(args) == 1 {
		input.Prompt = args[0]
	}
	dataset, err := app.Synthetic.Generate(cmd.Context(), sess, input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeTable(out, dataset.Table)

	if formatFlag == "" {
		return nil
	}
	file, err := app.Exports.Synthetic(sess, domain.ExportFormat(strings.ToLower(formatFlag)))
	if err != nil {
		return err
	}
	return writeExport(out, file)
}

func runAsk(cmd *cobra.Command, args []string) error {
	reply, err := app.Chat.Ask(cmd.Context(), sess, strings.Join(args, " "))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		reply = renderMarkdown(reply, terminalWidth())
	}
	fmt.Fprintln(out, reply)
	return nil
}

func runPII(cmd *cobra.Command, args []string) error {
	findings, err := app.Assist.InspectPII(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(findings) == 0 {
		fmt.Fprintln(out, severityStyle(domain.SeverityPass).Render("No personal data found"))
		return nil
	}
	for _, f := range findings {
		fmt.Fprintf(out, "%s %q %s\n", severityStyle(domain.SeverityMediumWarning).Render(f.InfoType), f.Quote, mutedStyle.Render(f.Likelihood))
	}
	return nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	audio, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	text, err := app.Assist.Transcribe(cmd.Context(), audio, languageFlag)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if app.RecordDB == nil {
		return fmt.Errorf("history needs a sql record store; set COPILOT_RECORD_STORE_PROVIDER to sqlite or postgres")
	}
	records, err := sqlstore.Recent(cmd.Context(), app.RecordDB, args[0], limitFlag)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, r := range records {
		fmt.Fprintf(out, "%s  %s\n%s\n\n", titleStyle.Render(r.ID), mutedStyle.Render(r.CreatedAt.Format("2006-01-02 15:04:05")), r.Fields)
	}
	return nil
}

// writeTable prints t with one row per record.
func writeTable(w io.Writer, t *domain.Table) {
	if t.Len() == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No records"))
		return
	}
	rows := make([][]string, t.Len())
	for i := range rows {
		values := t.Row(i)
		rows[i] = make([]string, len(values))
		for j, v := range values {
			rows[i][j] = v.Text()
		}
	}
	tbl := table.New().
		Headers(t.Columns...).
		Rows(rows...).
		Width(terminalWidth())
	fmt.Fprintln(w, tbl.Render())
}

// writeExport stores file at --out, or under its generated name.
func writeExport(w io.Writer, file *service.ExportFile) error {
	path := outFlag
	if path == "" {
		path = file.FileName
	}
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintln(w, mutedStyle.Render("Saved "+path))
	return nil
}
