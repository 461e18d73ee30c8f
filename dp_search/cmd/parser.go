package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// argPattern "--name" or "-name"; the name must start with a letter so negative numbers stay values
var argPattern = regexp.MustCompile(`^-{1,2}([A-Za-z][\w-]*)$`)

// Flag one command line parameter
type Flag struct {
	Name     string
	Aliases  []string
	Usage    string
	Required bool

	FlagValue Value
}

func (flag Flag) String() string {
	return fmt.Sprintf("--%s:%s", flag.Name, flag.FlagValue.String())
}

// fit reports whether oneName is the name or an alias of the flag
func (flag *Flag) fit(oneName string) bool {
	if flag.Name == oneName {
		return true
	}
	for _, name := range flag.Aliases {
		if name == oneName {
			return true
		}
	}
	return false
}

type FlagContainer struct {
	flags []*Flag
	set   map[string]bool
}

func NewFlagContainer() *FlagContainer {
	return &FlagContainer{set: make(map[string]bool)}
}

// GetFlags flags in registration order
func (container *FlagContainer) GetFlags() []*Flag {
	return container.flags
}

// IsSet reports whether the flag appeared on the last parsed command line
func (container *FlagContainer) IsSet(name string) bool {
	return container.set[name]
}

func (container FlagContainer) String() string {
	sortedFlags := make([]*Flag, len(container.flags))
	copy(sortedFlags, container.flags)
	sort.Slice(sortedFlags, func(i, j int) bool {
		return sortedFlags[i].Name < sortedFlags[j].Name
	})

	builder := strings.Builder{}
	for _, flag := range sortedFlags {
		builder.WriteString(flag.String())
		builder.WriteString("\n")
	}
	return builder.String()
}

// Usage one line per flag, in registration order
func (container *FlagContainer) Usage() string {
	builder := strings.Builder{}
	for _, flag := range container.flags {
		builder.WriteString(fmt.Sprintf("  --%-14s %s\n", flag.Name, flag.Usage))
	}
	return builder.String()
}

// AddFlags registers flags, names and aliases must be unique
func (container *FlagContainer) AddFlags(flags ...*Flag) error {
	for _, flagToBeAdded := range flags {
		for _, flagToCheck := range container.flags {
			if flagToCheck.fit(flagToBeAdded.Name) {
				return fmt.Errorf("already existed flag with name or alias:%s", flagToBeAdded.Name)
			}
			for _, alias := range flagToBeAdded.Aliases {
				if flagToCheck.fit(alias) {
					return fmt.Errorf("already existed flag with name or alias:%s", alias)
				}
			}
		}
		container.flags = append(container.flags, flagToBeAdded)
	}
	return nil
}

// Parse matches args against the registered flags. Every value following a flag name up
// to the next flag name belongs to that flag. A flag may appear once.
func (container *FlagContainer) Parse(args []string) error {
	container.set = make(map[string]bool)
	argIndex := 0
	for argIndex < len(args) {
		argName := argPattern.FindStringSubmatch(args[argIndex])
		if len(argName) != 2 {
			return fmt.Errorf("arg doesn't start with '--<arg name>':'%s'", args[argIndex])
		}
		var matched *Flag
		for _, flag := range container.flags {
			if flag.fit(argName[1]) {
				matched = flag
				break
			}
		}
		if matched == nil {
			return fmt.Errorf("unexpected arg:'%s'", argName[1])
		}
		if container.set[matched.Name] {
			return fmt.Errorf("duplicated arg:'%s'", argName[1])
		}

		argIndex++
		var argValue []string
		for argIndex < len(args) && argPattern.FindStringSubmatch(args[argIndex]) == nil {
			argValue = append(argValue, args[argIndex])
			argIndex++
		}
		if err := matched.FlagValue.Set(argValue); err != nil {
			return fmt.Errorf("error in set value for arg:'%s', <%s>", argName[1], err.Error())
		}
		container.set[matched.Name] = true
	}

	var err error
	for _, flag := range container.flags {
		if flag.Required && !container.set[flag.Name] {
			if err == nil {
				err = fmt.Errorf("flag is required but not set: '%s'", flag.Usage)
			} else {
				err = fmt.Errorf("%s\nflag is required but not set: '%s'", err.Error(), flag.Usage)
			}
		}
	}
	return err
}

type Value interface {
	// Set converts the raw strings following the flag name
	Set(rawValue []string) error
	// Get values for display, keyed by sub-parameter name
	Get() map[string]string
	String() string
}

// NoArgBoolValue sets its destination to true when the flag is present
type NoArgBoolValue struct {
	destination *bool
}

func NewNoArgBoolValue(destination *bool) *NoArgBoolValue {
	return &NoArgBoolValue{destination: destination}
}

func (value *NoArgBoolValue) Set(rawValue []string) error {
	if len(rawValue) > 0 {
		return errors.New("too many values for this arg")
	}
	*value.destination = true
	return nil
}

func (value *NoArgBoolValue) String() string {
	return strconv.FormatBool(*value.destination)
}

func (value *NoArgBoolValue) Get() map[string]string {
	return map[string]string{"firstParaValue": value.String()}
}

// single returns the only raw value of a one-value flag
func single(rawValue []string) (string, error) {
	if len(rawValue) == 0 {
		return "", errors.New("too few values for this arg, forget to set? ")
	}
	if len(rawValue) > 1 {
		return "", errors.New("too many values for this arg")
	}
	return rawValue[0], nil
}

type StringValue struct {
	destination *string
	validate    func(valueToCheck string) error
}

func NewStringValue(destination *string, validateFunc func(valueToCheck string) error) *StringValue {
	return &StringValue{destination: destination, validate: validateFunc}
}

func (value *StringValue) Set(rawValue []string) error {
	if value == nil || value.destination == nil {
		return errors.New("no destination to store values")
	}
	raw, err := single(rawValue)
	if err != nil {
		return err
	}
	if value.validate != nil {
		if err := value.validate(raw); err != nil {
			return fmt.Errorf("validate failed!===>%s", err.Error())
		}
	}
	*value.destination = raw
	return nil
}

func (value *StringValue) String() string {
	return *value.destination
}

func (value *StringValue) Get() map[string]string {
	return map[string]string{"firstParaValue": *value.destination}
}

type IntValue struct {
	destination *int
	validate    func(valueToCheck int) error
}

func NewIntValue(destination *int, validateFunc func(valueToCheck int) error) *IntValue {
	return &IntValue{destination: destination, validate: validateFunc}
}

func (value *IntValue) Set(rawValue []string) error {
	if value == nil || value.destination == nil {
		return errors.New("no destination to store values")
	}
	raw, err := single(rawValue)
	if err != nil {
		return err
	}
	intValue, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("can't use '%s' as integer values", raw)
	}
	if value.validate != nil {
		if err = value.validate(intValue); err != nil {
			return fmt.Errorf("validate failed!===>%s", err.Error())
		}
	}
	*value.destination = intValue
	return nil
}

func (value *IntValue) String() string {
	return strconv.Itoa(*value.destination)
}

func (value *IntValue) Get() map[string]string {
	return map[string]string{"firstParaValue": value.String()}
}

type Float64Value struct {
	destination *float64
	validate    func(valueToCheck float64) error
}

func NewFloat64Value(destination *float64, validateFunc func(valueToCheck float64) error) *Float64Value {
	return &Float64Value{destination: destination, validate: validateFunc}
}

func (value *Float64Value) Set(rawValue []string) error {
	if value == nil || value.destination == nil {
		return errors.New("no destination to store values")
	}
	raw, err := single(rawValue)
	if err != nil {
		return err
	}
	float64Value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("can't use '%s' as float64 value", raw)
	}
	if value.validate != nil {
		if err = value.validate(float64Value); err != nil {
			return fmt.Errorf("validate failed!===>%s", err.Error())
		}
	}
	*value.destination = float64Value
	return nil
}

func (value *Float64Value) String() string {
	return fmt.Sprintf("%g", *value.destination)
}

func (value *Float64Value) Get() map[string]string {
	return map[string]string{"firstParaValue": value.String()}
}

// NonNegative validator for numeric flags
func NonNegative(v float64) error {
	if v < 0 {
		return fmt.Errorf("expected a non-negative value, got %g", v)
	}
	return nil
}

// Percent validator for support flags
func Percent(v float64) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("expected a percentage in [0, 100], got %g", v)
	}
	return nil
}
