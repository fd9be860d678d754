package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/levelupinstalling/levelup/internal/config"
	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/mail"
	"github.com/levelupinstalling/levelup/internal/site"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a project inquiry from the terminal",
	Long: `Walks through the contact form in the terminal, checks it the same way the
site does and hands the finished inquiry to the system mail client. Fields
given as flags are not asked again; invalid fields are re-asked until the
draft passes.`,
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().String("name", "", "your name")
	composeCmd.Flags().String("email", "", "your email address")
	composeCmd.Flags().String("subject", "", "inquiry subject")
	composeCmd.Flags().String("message", "", "project briefing")
	composeCmd.Flags().Bool("print", false, "print the mailto link instead of opening the mail client")
	composeCmd.Flags().Bool("no-input", false, "never prompt; fail if the flags do not form a valid inquiry")
	rootCmd.AddCommand(composeCmd)
}

var fieldLabels = map[interaction.Field]string{
	interaction.FieldName:    "Identity / Name",
	interaction.FieldEmail:   "Contact / Email",
	interaction.FieldSubject: "Target / Subject",
	interaction.FieldMessage: `Briefing / Message (\n for new lines)`,
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := loadContent(cfg)
	if err != nil {
		return err
	}
	composer := interaction.NewContactComposer(site.SessionOptions(c, cfg.ScrollThreshold).Composer)

	var ask []interaction.Field
	for _, f := range interaction.Fields {
		if !cmd.Flags().Changed(string(f)) {
			ask = append(ask, f)
			continue
		}
		v, _ := cmd.Flags().GetString(string(f))
		if err := composer.SetField(f, v); err != nil {
			return err
		}
	}

	var handler mail.Handler = mail.NewLauncher()
	if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
		handler = mail.HandlerFunc(func(in mail.Intent) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mail.URL(in))
			return err
		})
	}
	var w config.Wizard
	if noInput, _ := cmd.Flags().GetBool("no-input"); !noInput {
		w = config.TerminalWizard()
	}

	intent, err := composeInquiry(w, composer, handler, ask, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Inquiry to %s ready: %s\n", intent.Recipient, intent.Subject)
	return nil
}

// composeInquiry asks for the given fields, submits the draft and re-asks
// only the fields that fail validation. With a nil wizard the draft is
// submitted once as it stands.
func composeInquiry(w config.Wizard, c *interaction.ContactComposer, h mail.Handler, ask []interaction.Field, out io.Writer) (mail.Intent, error) {
	for {
		if w != nil {
			for _, f := range ask {
				if err := askField(w, c, f); err != nil {
					return mail.Intent{}, fmt.Errorf("%s: %w", f, err)
				}
			}
		}

		intent, err := c.Submit(h)
		var verr *interaction.ValidationError
		if w == nil || !errors.As(err, &verr) {
			return intent, err
		}
		fmt.Fprintf(out, "%v\n", verr)
		ask = nil
		for _, fe := range verr.Fields {
			ask = append(ask, fe.Field)
		}
	}
}

func askField(w config.Wizard, c *interaction.ContactComposer, f interaction.Field) error {
	if subjects := c.Config().Subjects; f == interaction.FieldSubject && len(subjects) > 0 {
		idx, err := w.Select(fieldLabels[f], subjects)
		if err != nil {
			return err
		}
		return c.SetField(f, subjects[idx])
	}

	v, err := w.Prompt(fieldLabels[f], c.Draft().Get(f), nil)
	if err != nil {
		return err
	}
	if f == interaction.FieldMessage {
		v = strings.ReplaceAll(v, `\n`, "\n")
	}
	return c.SetField(f, v)
}
