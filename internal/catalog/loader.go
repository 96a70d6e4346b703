package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/comicverse/hub/internal/domain"
)

//go:embed comics.yaml
var embeddedFixture []byte

// fixture is the on-disk shape of a catalog file.
type fixture struct {
	Comics []comicRecord `yaml:"comics"`
}

type comicRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Publisher   string   `yaml:"publisher"`
	Price       string   `yaml:"price"`
	ReleaseDate string   `yaml:"release_date"`
	Genre       string   `yaml:"genre"`
	Characters  []string `yaml:"characters"`
	CoverImage  string   `yaml:"cover_image"`
	Synopsis    string   `yaml:"synopsis"`
	Creators    struct {
		Writer   string `yaml:"writer"`
		Artist   string `yaml:"artist"`
		Colorist string `yaml:"colorist"`
	} `yaml:"creators"`
	Featured bool `yaml:"featured"`
	Popular  bool `yaml:"popular"`
}

func (r comicRecord) toDomain() (domain.Comic, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domain.Comic{}, fmt.Errorf("comic %q: invalid price %q: %w", r.ID, r.Price, err)
	}
	var released domain.Date
	if r.ReleaseDate != "" {
		if released, err = domain.ParseDate(r.ReleaseDate); err != nil {
			return domain.Comic{}, fmt.Errorf("comic %q: %w", r.ID, err)
		}
	}
	characters := r.Characters
	if characters == nil {
		characters = []string{}
	}
	return domain.Comic{
		ID:          r.ID,
		Title:       r.Title,
		Publisher:   r.Publisher,
		Price:       price,
		ReleaseDate: released,
		Genre:       r.Genre,
		Characters:  characters,
		CoverImage:  r.CoverImage,
		Synopsis:    r.Synopsis,
		Creators: domain.Creators{
			Writer:   r.Creators.Writer,
			Artist:   r.Creators.Artist,
			Colorist: r.Creators.Colorist,
		},
		Featured: r.Featured,
		Popular:  r.Popular,
	}, nil
}

// Parse builds a catalog from YAML fixture bytes.
func Parse(data []byte) (*Catalog, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	comics := make([]domain.Comic, 0, len(f.Comics))
	for _, r := range f.Comics {
		c, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		comics = append(comics, c)
	}
	return New(comics)
}

// Load reads the catalog from path, or the embedded fixture when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedFixture)
}
