package elf

import (
	"errors"
	"fmt"
)

// Sentinel decode failures.  Callers match these with errors.Is; the
// DecodeError wrapper adds stage / field / offset context.
var (
	ErrMalformedMagic          = errors.New("malformed elf magic number")
	ErrUnsupportedClass        = errors.New("unsupported elf class")
	ErrUnsupportedDataEncoding = errors.New("unsupported data encoding")
	ErrUnsupportedVersion      = errors.New("unsupported elf version")
	ErrTruncated               = errors.New("truncated input")
)

type DecodeStage int

const (
	StageIdentification = DecodeStage(iota)
	StageFileHeader
	StageProgramHeaders
	StageSectionHeaders
)

func (stage DecodeStage) String() string {
	switch stage {
	case StageIdentification:
		return "identification"
	case StageFileHeader:
		return "file header"
	case StageProgramHeaders:
		return "program headers"
	case StageSectionHeaders:
		return "section headers"
	default:
		return fmt.Sprintf("DecodeStageUnknown(%d)", int(stage))
	}
}

// DecodeError tags a failure with the pipeline stage that produced it.  A
// failed stage aborts the whole decode; there is no partial result.
type DecodeError struct {
	Stage  DecodeStage
	Field  string
	Offset int

	Err error
}

func (err *DecodeError) Error() string {
	if err.Field == "" {
		return fmt.Sprintf(
			"failed to decode %s (%d): %s",
			err.Stage,
			err.Offset,
			err.Err)
	}

	return fmt.Sprintf(
		"failed to decode %s %s (%d): %s",
		err.Stage,
		err.Field,
		err.Offset,
		err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

func newDecodeError(
	stage DecodeStage,
	field string,
	offset int,
	err error,
) error {
	return &DecodeError{
		Stage:  stage,
		Field:  field,
		Offset: offset,
		Err:    err,
	}
}
