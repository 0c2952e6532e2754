package cli

import (
	"github.com/spf13/pflag"

	"github.com/shinji-kodama/qr-terminal/internal/model"
)

var (
	_ pflag.Value = (*levelValue)(nil)
	_ pflag.Value = (*versionValue)(nil)
)

// levelValue adapts model.ErrorLevel to pflag.Value so an invalid
// --error-correction value is rejected while flags are parsed.
type levelValue struct {
	target *model.ErrorLevel
}

func newLevelValue(target *model.ErrorLevel) *levelValue {
	return &levelValue{target: target}
}

func (v *levelValue) String() string {
	if v.target == nil {
		return ""
	}
	return v.target.String()
}

func (v *levelValue) Set(s string) error {
	level, err := model.ParseErrorLevel(s)
	if err != nil {
		return err
	}
	*v.target = level
	return nil
}

func (v *levelValue) Type() string {
	return "L|M|Q|H"
}

// versionValue adapts model.Version to pflag.Value. It accepts "auto" or
// a number between 1 and 40.
type versionValue struct {
	target *model.Version
}

func newVersionValue(target *model.Version) *versionValue {
	return &versionValue{target: target}
}

func (v *versionValue) String() string {
	if v.target == nil {
		return ""
	}
	return v.target.String()
}

func (v *versionValue) Set(s string) error {
	version, err := model.ParseVersion(s)
	if err != nil {
		return err
	}
	*v.target = version
	return nil
}

func (v *versionValue) Type() string {
	return "auto|1-40"
}
