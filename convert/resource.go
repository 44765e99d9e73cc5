package convert

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/css"
	"github.com/danielegts/enex2notion/enex"
	"github.com/danielegts/enex2notion/notion"
	"github.com/danielegts/enex2notion/utils/images"
)

// mediaBlock resolves an en-media reference against the note's resource set.
// A missing resource is recoverable: it is logged and the block is omitted,
// sibling blocks are unaffected.
func (c *Converter) mediaBlock(el *etree.Element) *notion.Block {
	hash := strings.ToLower(el.SelectAttrValue("hash", ""))
	res, ok := c.res.ByHash(hash)
	if !ok {
		c.log.Warn("Failed to resolve resource", zap.String("hash", hash))
		return nil
	}

	// the reference's own type attribute wins over what the resource carries
	if mime := el.SelectAttrValue("type", ""); mime != "" && mime != res.Mime {
		clone := *res
		clone.Mime = mime
		res = &clone
	}

	b := notion.NewResourceBlock(res)
	b.Width, b.Height = elementDimensions(el)
	return b
}

// imageBlock handles inline img elements: a data URI source synthesizes a
// resource on the spot, an external URL becomes an embed block referencing
// it. Images with no usable source are dropped silently.
func (c *Converter) imageBlock(el *etree.Element) *notion.Block {
	src := el.SelectAttrValue("src", "")
	switch {
	case src == "":
		return nil
	case strings.HasPrefix(src, "data:"):
		return c.inlineImageBlock(el, src)
	}
	b := notion.NewEmbedBlock(src)
	b.Width, b.Height = elementDimensions(el)
	return b
}

func (c *Converter) inlineImageBlock(el *etree.Element, src string) *notion.Block {
	mime, data, ok := parseDataURI(src)
	if !ok {
		c.log.Warn("Failed to decode inline image")
		return nil
	}

	if mime == "" || mime == "application/octet-stream" {
		mime = enex.SniffMime(data)
	}

	if mime == "image/svg+xml" && c.opts.RasterizeSVG {
		png, err := images.RasterizeSVGToPNG(data, c.opts.MaxRasterDim)
		if err != nil {
			c.log.Warn("Failed to rasterize inline image", zap.Error(err))
		} else {
			data = png
			mime = "image/png"
		}
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])
	res := &enex.Resource{
		DataBin:  data,
		Size:     len(data),
		MD5:      hash,
		Mime:     mime,
		FileName: hash + "." + enex.MimeToExt(mime),
	}

	b := notion.NewResourceBlock(res)
	if b.Width, b.Height = elementDimensions(el); b.Width == nil && b.Height == nil {
		b.Width, b.Height = probeDimensions(data, mime)
	}
	return b
}

// parseDataURI splits a data: URI into mime type and decoded payload.
// Supports base64 payloads and percent-encoded text payloads (inline SVG).
func parseDataURI(src string) (string, []byte, bool) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !found {
		return "", nil, false
	}

	isBase64 := false
	mime := ""
	for i, part := range strings.Split(meta, ";") {
		switch {
		case part == "base64":
			isBase64 = true
		case i == 0:
			mime = strings.TrimSpace(part)
		}
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, false
		}
		return mime, data, true
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, false
	}
	return mime, []byte(text), true
}

// elementDimensions reads pixel dimensions from the element's natural-size
// style markers, falling back to legacy width/height attributes. Absent
// dimensions stay absent, they are never defaulted to zero.
func elementDimensions(el *etree.Element) (*int, *int) {
	style := css.ParseInline(el.SelectAttrValue("style", ""))

	w := dimensionValue(style, el, "--en-naturalwidth", "width")
	h := dimensionValue(style, el, "--en-naturalheight", "height")
	return w, h
}

func dimensionValue(style css.Style, el *etree.Element, marker, attr string) *int {
	if v, ok := style.Marker(marker); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return &n
		}
	}
	if v := el.SelectAttrValue(attr, ""); v != "" {
		if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px")); err == nil && n > 0 {
			return &n
		}
	}
	return nil
}

func probeDimensions(data []byte, mime string) (*int, *int) {
	var (
		w, h int
		err  error
	)
	if mime == "image/svg+xml" {
		w, h, err = images.SVGDimensions(data)
	} else {
		w, h, err = images.Dimensions(data)
	}
	if err != nil || w <= 0 || h <= 0 {
		return nil, nil
	}
	return &w, &h
}
