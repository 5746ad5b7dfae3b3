package elf

import (
	"fmt"
)

// Identification holds the decoded 16-byte identification block.  The class
// and data encoding select the layout and byte order used by every decoder
// downstream; the os/abi fields are advisory.
type Identification struct {
	Class
	DataEncoding
	Version byte
	OperatingSystemABI
	ABIVersion byte
}

// decodeIdentification validates the magic and decodes the identification
// fields.  The identifier has no endianness of its own; every field is a
// single byte.
func decodeIdentification(cursor *Cursor) (Identification, error) {
	ident := Identification{}

	if !cursor.ExpectBytes(IdentifierMagic) {
		return ident, newDecodeError(
			StageIdentification,
			"magic",
			cursor.Position,
			ErrMalformedMagic)
	}

	class, err := cursor.U8()
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"class",
			cursor.Position,
			err)
	}

	switch Class(class) {
	case Class32, Class64:
		ident.Class = Class(class)
	default:
		return ident, newDecodeError(
			StageIdentification,
			"class",
			cursor.Position,
			fmt.Errorf("%w: %s", ErrUnsupportedClass, Class(class)))
	}

	encoding, err := cursor.U8()
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"data encoding",
			cursor.Position,
			err)
	}

	switch DataEncoding(encoding) {
	case DataEncodingLittleEndian, DataEncodingBigEndian:
		ident.DataEncoding = DataEncoding(encoding)
	default:
		return ident, newDecodeError(
			StageIdentification,
			"data encoding",
			cursor.Position,
			fmt.Errorf(
				"%w: %s",
				ErrUnsupportedDataEncoding,
				DataEncoding(encoding)))
	}

	version, err := cursor.U8()
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"version",
			cursor.Position,
			err)
	}

	if version != IdentifierVersion {
		return ident, newDecodeError(
			StageIdentification,
			"version",
			cursor.Position,
			fmt.Errorf("%w: %d", ErrUnsupportedVersion, version))
	}
	ident.Version = version

	osAbi, err := cursor.U8()
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"os/abi",
			cursor.Position,
			err)
	}
	ident.OperatingSystemABI = OperatingSystemABI(osAbi)

	abiVersion, err := cursor.U8()
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"abi version",
			cursor.Position,
			err)
	}
	ident.ABIVersion = abiVersion

	// EI_PAD.  Skipped unconditionally; content is not significant.
	_, err = cursor.Bytes(7)
	if err != nil {
		return ident, newDecodeError(
			StageIdentification,
			"padding",
			cursor.Position,
			err)
	}

	return ident, nil
}

// append emits the exact 16-byte on-disk identification block.
func (ident Identification) append(buffer []byte) []byte {
	buffer = append(buffer, IdentifierMagic...)
	buffer = append(
		buffer,
		byte(ident.Class),
		byte(ident.DataEncoding),
		ident.Version,
		byte(ident.OperatingSystemABI),
		ident.ABIVersion)
	buffer = append(buffer, make([]byte, 7)...)
	return buffer
}
