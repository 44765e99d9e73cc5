package enex

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ENEX parsing. We want exhaustive parsing - it is not very effective but
// ensures full correctness and gives us detailed debug output. Unexpected
// tags are reported and skipped, a single broken note never aborts the
// export.

// enexTimeLayout is the timestamp format used by Evernote exports.
const enexTimeLayout = "20060102T150405Z"

// Parse reads an ENEX export and returns its notes in document order.
func Parse(r io.Reader, log *zap.Logger) ([]*Note, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read ENEX: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("export has no root element")
	}
	if root.Tag != "en-export" {
		return nil, fmt.Errorf("unexpected root element %q", root.Tag)
	}

	var notes []*Note
	for _, child := range root.ChildElements() {
		if child.Tag != "note" {
			log.Warn("Unexpected tag in en-export, ignoring", zap.String("tag", child.Tag))
			continue
		}
		note, err := parseNote(child, log)
		if err != nil {
			log.Warn("Skipping unreadable note", zap.String("title", note.Title), zap.Error(err))
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func parseNote(el *etree.Element, log *zap.Logger) (*Note, error) {
	note := &Note{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "title":
			note.Title = strings.TrimSpace(child.Text())
		case "content":
			note.Content = child.Text()
		case "created":
			note.Created = parseTimestamp(child.Text(), log)
		case "updated":
			note.Updated = parseTimestamp(child.Text(), log)
		case "tag":
			if tag := strings.TrimSpace(child.Text()); tag != "" {
				note.Tags = append(note.Tags, tag)
			}
		case "note-attributes":
			parseNoteAttributes(child, note, log)
		case "resource":
			res, err := parseResource(child, log)
			if err != nil {
				log.Warn("Unable to decode note resource, skipping", zap.String("title", note.Title), zap.Error(err))
				continue
			}
			note.Resources = append(note.Resources, res)
		default:
			log.Warn("Unexpected tag in note, ignoring", zap.String("tag", child.Tag))
		}
	}

	if note.Title == "" {
		note.Title = "Untitled"
	}
	if note.Content == "" {
		return note, errors.New("note has no content")
	}

	// Notes carry no stable identity of their own, give each one a sortable id.
	id, err := uuid.NewV7()
	if err != nil {
		return note, fmt.Errorf("unable to generate note id: %w", err)
	}
	note.ID = id.String()

	return note, nil
}

func parseNoteAttributes(el *etree.Element, note *Note, _ *zap.Logger) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "author":
			note.Author = strings.TrimSpace(child.Text())
		case "source-url":
			note.SourceURL = strings.TrimSpace(child.Text())
		case "source":
			if strings.HasPrefix(strings.TrimSpace(child.Text()), "web.clip") {
				note.IsWebClip = true
			}
		case "source-application":
			if strings.Contains(strings.ToLower(child.Text()), "webclipper") {
				note.IsWebClip = true
			}
		}
		// the rest of the attributes (latitude, reminders, etc.) carry
		// nothing the destination model can represent
	}
}

func parseResource(el *etree.Element, log *zap.Logger) (*Resource, error) {
	res := &Resource{}

	var fileName string
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "data":
			data, err := decodeResourceData(child, log)
			if err != nil {
				return nil, err
			}
			res.DataBin = data
		case "mime":
			res.Mime = strings.TrimSpace(child.Text())
		case "resource-attributes":
			if fn := child.SelectElement("file-name"); fn != nil {
				fileName = strings.TrimSpace(fn.Text())
			}
		case "width", "height", "recognition", "alternate-data", "duration":
			// presentational or derived, nothing to keep
		default:
			log.Debug("Unexpected tag in resource, ignoring", zap.String("tag", child.Tag))
		}
	}

	if len(res.DataBin) == 0 {
		return nil, errors.New("resource has no data")
	}

	res.Size = len(res.DataBin)
	sum := md5.Sum(res.DataBin)
	res.MD5 = hex.EncodeToString(sum[:])

	if res.Mime == "" {
		res.Mime = SniffMime(res.DataBin)
	}
	if fileName == "" {
		fileName = res.MD5 + "." + MimeToExt(res.Mime)
	}
	res.FileName = fileName

	return res, nil
}

func decodeResourceData(el *etree.Element, log *zap.Logger) ([]byte, error) {
	if enc := el.SelectAttrValue("encoding", "base64"); enc != "base64" {
		return nil, fmt.Errorf("unsupported resource encoding %q", enc)
	}
	data, err := base64.StdEncoding.DecodeString(normalizeBase64(el.Text()))
	if err != nil {
		var corruptErr base64.CorruptInputError
		if errors.As(err, &corruptErr) && len(data) > 0 {
			log.Warn("Unable to fully decode resource data", zap.Error(err))
			return data, nil
		}
		return nil, fmt.Errorf("decode resource data: %w", err)
	}
	return data, nil
}

func parseTimestamp(in string, log *zap.Logger) time.Time {
	in = strings.TrimSpace(in)
	if in == "" {
		return time.Time{}
	}
	t, err := time.Parse(enexTimeLayout, in)
	if err != nil {
		log.Debug("Failed to parse note timestamp", zap.String("value", in), zap.Error(err))
		return time.Time{}
	}
	return t
}

func normalizeBase64(input string) string {
	var builder strings.Builder
	builder.Grow(len(input))
	for _, r := range input {
		if !unicode.IsSpace(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
