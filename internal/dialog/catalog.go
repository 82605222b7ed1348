package dialog

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ReplyTemplate is one entry of the reply table, immutable after load.
type ReplyTemplate struct {
	Description   string `yaml:"description"`
	Reply         string `yaml:"reply"`
	ImageRequired bool   `yaml:"image_required"`
	ImageType     string `yaml:"image_type"` // "product_catalog" or "size_chart"
}

// ReplyTable maps each intent to its reply template. A valid table
// always contains the fallback entry.
type ReplyTable map[Intent]ReplyTemplate

// ProductImages maps visual intents and colors to image URLs.
type ProductImages struct {
	ProductCatalog string            `yaml:"product_catalog"`
	SizeChart      string            `yaml:"size_chart"`
	ByColor        map[string]string `yaml:"product_images"`
}

const defaultFallbackReply = "ขอบคุณที่ติดต่อค่ะ"

// LoadReplyTable reads the reply table from a YAML file. A missing file
// degrades to a minimal table holding only the fallback entry; a file
// that parses but lacks the fallback entry, or names an intent outside
// the closed set, is a configuration error.
func LoadReplyTable(path string) (ReplyTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: %s not found, using fallback-only reply table", path)
			return ReplyTable{IntentFallback: {Reply: defaultFallbackReply}}, nil
		}
		return nil, fmt.Errorf("failed to read reply table: %w", err)
	}
	var raw map[string]ReplyTemplate
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse reply table: %w", err)
	}
	table := make(ReplyTable, len(raw))
	for k, v := range raw {
		intent := Intent(k)
		if !intent.Valid() {
			return nil, fmt.Errorf("reply table entry %q is not a known intent", k)
		}
		table[intent] = v
	}
	if _, ok := table[IntentFallback]; !ok {
		return nil, fmt.Errorf("reply table %s is missing the mandatory fallback entry", path)
	}
	return table, nil
}

// Reply returns the template text for intent, or the fallback text when
// the intent has no entry.
func (t ReplyTable) Reply(intent Intent) string {
	if tmpl, ok := t[intent]; ok && intent != IntentFallback {
		return tmpl.Reply
	}
	if tmpl, ok := t[IntentFallback]; ok {
		return tmpl.Reply
	}
	return defaultFallbackReply
}

// Descriptions returns intent descriptions for the classifier prompt,
// excluding fallback which the model must never pick.
func (t ReplyTable) Descriptions() map[Intent]string {
	out := make(map[Intent]string, len(t))
	for intent, tmpl := range t {
		if intent == IntentFallback {
			continue
		}
		out[intent] = tmpl.Description
	}
	return out
}

// LoadProductImages reads the image map. Missing file degrades to an
// empty map with a logged warning.
func LoadProductImages(path string) (ProductImages, error) {
	var images ProductImages
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("warning: %s not found, running without product images", path)
			return images, nil
		}
		return images, fmt.Errorf("failed to read product images: %w", err)
	}
	if err := yaml.Unmarshal(b, &images); err != nil {
		return images, fmt.Errorf("failed to parse product images: %w", err)
	}
	return images, nil
}

// LoadBusinessFacts reads the business facts blob forwarded verbatim
// into prompts. Missing file degrades to an empty blob.
func LoadBusinessFacts(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: %s not found, running without business facts", path)
		return ""
	}
	return string(b)
}
