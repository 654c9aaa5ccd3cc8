package console

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/parser"
	"github.com/eugenenazirov/parcel-loader/internal/processor"
	"github.com/eugenenazirov/parcel-loader/internal/report"
)

// Command is a single console action.
type Command interface {
	Name() string
	Description() string
	Matches(input string) bool
	Execute(input string) error
}

type emptyCommand struct {
	logger *zap.Logger
}

func (c emptyCommand) Name() string        { return "empty" }
func (c emptyCommand) Description() string { return "empty line, ignored" }

func (c emptyCommand) Matches(input string) bool {
	return strings.TrimSpace(input) == ""
}

func (c emptyCommand) Execute(string) error {
	c.logger.Debug("empty input ignored")
	return nil
}

type exitCommand struct{}

func (exitCommand) Name() string        { return "exit" }
func (exitCommand) Description() string { return "end the session" }

func (exitCommand) Matches(input string) bool {
	return strings.TrimSpace(input) == "exit"
}

func (exitCommand) Execute(string) error {
	return ErrExit
}

var importPattern = regexp.MustCompile(`^import\s+(.+?\.txt)\s+(\S+)$`)

// importCommand loads a parcel file with the requested strategy and writes the text report.
type importCommand struct {
	out    io.Writer
	logger *zap.Logger
}

func (c importCommand) Name() string { return "import" }

func (c importCommand) Description() string {
	return "import parcels from a file: import <file.txt> <strategy>; strategies: " + strategiesDescription()
}

func (c importCommand) Matches(input string) bool {
	return importPattern.MatchString(strings.TrimSpace(input))
}

func (c importCommand) Execute(input string) error {
	match := importPattern.FindStringSubmatch(strings.TrimSpace(input))
	if match == nil {
		return fmt.Errorf("%w: use import <file.txt> <strategy>", ErrBadCommand)
	}
	path, rawStrategy := match[1], match[2]

	strategyType, err := loader.ParseStrategyType(rawStrategy)
	if err != nil {
		return fmt.Errorf("%w: %w (available: %s)", ErrBadCommand, err, strategiesDescription())
	}
	strategy, err := loader.NewStrategy(strategyType, c.logger)
	if err != nil {
		return err
	}

	c.logger.Debug("importing parcels",
		zap.String("path", path),
		zap.Stringer("strategy", strategyType),
	)

	proc, err := processor.New(parser.NewFileSource(path), strategy, c.logger)
	if err != nil {
		return err
	}
	result, err := proc.Process()
	if err != nil {
		return err
	}

	_, err = io.WriteString(c.out, report.Text(result))
	return err
}

func strategiesDescription() string {
	parts := make([]string, 0, len(loader.StrategyTypes()))
	for _, t := range loader.StrategyTypes() {
		parts = append(parts, fmt.Sprintf("%d - %s", t.ID(), t))
	}
	return strings.Join(parts, "; ")
}
