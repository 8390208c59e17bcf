package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dnlam/staff-matcher/internal/logger"
	"github.com/dnlam/staff-matcher/internal/recommend"
	"github.com/dnlam/staff-matcher/internal/requirement"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowReport = "Show full report"
	PromptDumpToFile = "Dump recommendations to file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Recommendations ready",
	Items: []string{PromptShowReport, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run [project description]",
	Short: "Match employees against a project description and print recommendations",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("file", "f", "", "read the project description from a file instead of arguments")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the recommendations as JSON and exit without prompting")
	runCmd.Flags().Bool("ignore-availability", false, "skip the availability filter and consider every employee")
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the staff-matcher", zap.String("version", version))

	description, err := readDescription(cmd, args)
	if err != nil {
		logger.Fatal("reading project description", zap.Error(err))
	}

	m, err := buildMatcher(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the matching pipeline", zap.Error(err))
	}

	ignoreAvailability, _ := cmd.Flags().GetBool("ignore-availability")

	outcome, err := m.match(ctx, description, ignoreAvailability)
	if err != nil {
		if requirement.IsInputError(err) {
			logger.Fatal("project description rejected", zap.Error(err))
		}
		logger.Fatal("matching run failed", zap.Error(err))
	}

	logger.Info("matching finished",
		zap.Int("recommended", len(outcome.RecommendedEmployees)),
		zap.String("summary", outcome.RecommendationSummary),
	)

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		pretty, _ := json.MarshalIndent(outcome, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, outcome, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, outcome *recommend.Outcome, logger *zap.Logger) error {
	switch action {
	case PromptShowReport:
		pretty, _ := json.MarshalIndent(outcome, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := dumpToTmpFile(outcome)
		if err != nil {
			return fmt.Errorf("dump recommendations to file: %w", err)
		}
		logger.Info("dumping recommendations to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func readDescription(cmd *cobra.Command, args []string) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if description := strings.TrimSpace(strings.Join(args, " ")); description != "" {
		return description, nil
	}

	return "", errors.New("a project description is required, as arguments or via --file")
}

func dumpToTmpFile(outcome *recommend.Outcome) (string, error) {
	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return "", err
	}

	return f.Name(), nil
}
