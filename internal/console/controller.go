package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Controller reads commands line by line and dispatches them.
type Controller struct {
	commands []Command
	logger   *zap.Logger
}

// NewController wires the built-in commands. Reports are written to out.
func NewController(out io.Writer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		commands: []Command{
			emptyCommand{logger: logger},
			importCommand{out: out, logger: logger},
			exitCommand{},
		},
		logger: logger,
	}
}

// Commands returns the registered commands in match order.
func (c *Controller) Commands() []Command {
	return c.commands
}

// Help lists the available commands, one per line.
func (c *Controller) Help() string {
	var b strings.Builder
	for _, cmd := range c.commands {
		fmt.Fprintf(&b, "[%s] %s\n", cmd.Name(), cmd.Description())
	}
	return b.String()
}

// Listen processes lines from in until "exit" or end of input.
// Command failures are logged and the loop continues.
func (c *Controller) Listen(in io.Reader) error {
	c.logger.Info("console ready", zap.Strings("commands", c.names()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if errors.Is(c.Dispatch(input), ErrExit) {
			c.logger.Info("console session ended")
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console input: %w", err)
	}
	return nil
}

// Dispatch runs the first command matching input. It returns ErrExit for
// "exit" and the command error otherwise; unknown input is not an error.
func (c *Controller) Dispatch(input string) error {
	for _, cmd := range c.commands {
		if !cmd.Matches(input) {
			continue
		}
		err := cmd.Execute(input)
		if err != nil && !errors.Is(err, ErrExit) {
			c.logger.Error("command failed",
				zap.String("command", cmd.Name()),
				zap.String("input", input),
				zap.Error(err),
			)
		}
		return err
	}
	c.logger.Debug("unknown command", zap.String("input", input))
	return nil
}

func (c *Controller) names() []string {
	names := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		names = append(names, cmd.Name())
	}
	return names
}
