package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/milk9111/tilescene/level"
)

// reencodeMap rewrites every tile layer's data with comp and writes the
// document to w. Everything else in the document is kept as is.
func reencodeMap(data []byte, comp level.Compression, w io.Writer) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("%w: %v", level.ErrMalformedDocument, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "map" {
		return fmt.Errorf("%w: root element is not <map>", level.ErrMalformedDocument)
	}
	width, err := strconv.Atoi(root.SelectAttrValue("width", ""))
	if err != nil {
		return fmt.Errorf("%w: map width: %v", level.ErrMalformedDocument, err)
	}
	height, err := strconv.Atoi(root.SelectAttrValue("height", ""))
	if err != nil {
		return fmt.Errorf("%w: map height: %v", level.ErrMalformedDocument, err)
	}

	for _, layer := range root.SelectElements("layer") {
		d := layer.SelectElement("data")
		if d == nil {
			continue
		}
		enc := level.Encoding(strings.ToLower(d.SelectAttrValue("encoding", string(level.EncodingBase64))))
		from := level.CompressionNone
		if enc == level.EncodingBase64 {
			if from, err = level.ParseCompression(d.SelectAttrValue("compression", string(level.CompressionZlib))); err != nil {
				return err
			}
		}
		g, err := level.DecodeGrid(d.Text(), enc, from, width, height)
		if err != nil {
			return fmt.Errorf("layer %q: %w", layer.SelectAttrValue("name", ""), err)
		}
		text, err := level.EncodeGrid(g, comp)
		if err != nil {
			return err
		}

		d.CreateAttr("encoding", string(level.EncodingBase64))
		if comp == level.CompressionNone {
			d.CreateAttr("compression", "none")
		} else {
			d.CreateAttr("compression", string(comp))
		}
		d.SetText(text)
	}

	doc.Indent(1)
	_, err = doc.WriteTo(w)
	return err
}
