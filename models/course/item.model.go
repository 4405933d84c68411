package course

import (
	"errors"
	"strings"
	"time"
)

// ItemKind tags the table a Content row points into
type ItemKind string

const (
	KindText  ItemKind = "text"
	KindFile  ItemKind = "file"
	KindImage ItemKind = "image"
	KindVideo ItemKind = "video"
)

// ItemKinds lists every kind a content item may have
var ItemKinds = []ItemKind{KindText, KindFile, KindImage, KindVideo}

var ErrUnknownItemKind = errors.New("unknown content item kind")

// ParseItemKind resolves a model name from a URL into its kind
func ParseItemKind(name string) (ItemKind, error) {
	kind := ItemKind(strings.ToLower(strings.TrimSpace(name)))
	for _, k := range ItemKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", ErrUnknownItemKind
}

// Item is implemented by *Text, *File, *Image and *Video
type Item interface {
	Kind() ItemKind
	Base() *ItemBase
	// StoredFile returns the upload backing the item, if any
	StoredFile() string
}

// ItemBase carries the columns shared by every item table
type ItemBase struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"size:250;not null"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

func (b *ItemBase) Base() *ItemBase { return b }

type Text struct {
	ItemBase
	Content string `json:"content" gorm:"type:text"`
}

type File struct {
	ItemBase
	File string `json:"file"`
}

type Image struct {
	ItemBase
	File string `json:"file"`
}

type Video struct {
	ItemBase
	URL string `json:"url"`
}

func (*Text) Kind() ItemKind  { return KindText }
func (*File) Kind() ItemKind  { return KindFile }
func (*Image) Kind() ItemKind { return KindImage }
func (*Video) Kind() ItemKind { return KindVideo }

func (*Text) StoredFile() string    { return "" }
func (f *File) StoredFile() string  { return f.File }
func (i *Image) StoredFile() string { return i.File }
func (*Video) StoredFile() string   { return "" }

// NewItem returns a blank item of the given kind
func NewItem(kind ItemKind) (Item, error) {
	switch kind {
	case KindText:
		return &Text{}, nil
	case KindFile:
		return &File{}, nil
	case KindImage:
		return &Image{}, nil
	case KindVideo:
		return &Video{}, nil
	}
	return nil, ErrUnknownItemKind
}
