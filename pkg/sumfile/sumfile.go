package sumfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/mr-tron/base58"
)

type hashedEntity struct {
	hash   []byte
	entity string
	algo   string
}

// Sumfile is the digest ledger kept next to finished archives. Each
// line is "algo:base58hash filename". It is informational only; the
// archive name itself is the cache key.
type Sumfile struct {
	entities []hashedEntity
}

func (s *Sumfile) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				break
			}

			return err
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			continue
		}

		space := bytes.IndexByte(line, ' ')
		if space == -1 {
			continue
		}

		algo := string(line[:colon])

		hash := string(line[colon+1 : space])

		entity := string(bytes.TrimSpace(line[space+1:]))

		b, err := base58.Decode(hash)
		if err != nil {
			return err
		}

		var he hashedEntity

		he.entity = entity
		he.algo = algo
		he.hash = b

		s.entities = append(s.entities, he)
	}

	sort.Slice(s.entities, func(i, j int) bool {
		return s.entities[i].entity < s.entities[j].entity
	})

	return nil
}

// Add records a digest for entity, replacing any previous entry. An
// archive rebuilt after a clean keeps a single ledger line.
func (s *Sumfile) Add(entity, algo string, h []byte) (string, error) {
	for i, he := range s.entities {
		if he.entity == entity {
			s.entities[i].algo = algo
			s.entities[i].hash = h

			return algo + ":" + base58.Encode(h), nil
		}
	}

	s.entities = append(s.entities, hashedEntity{
		algo:   algo,
		hash:   h,
		entity: entity,
	})

	sort.Slice(s.entities, func(i, j int) bool {
		return s.entities[i].entity < s.entities[j].entity
	})

	return algo + ":" + base58.Encode(h), nil
}

func (s *Sumfile) Save(w io.Writer) error {
	for _, he := range s.entities {
		sh := base58.Encode(he.hash)
		fmt.Fprintf(w, "%s:%s %s\n", he.algo, sh, he.entity)
	}

	return nil
}

func (s *Sumfile) Lookup(entity string) (string, []byte, bool) {
	idx := sort.Search(len(s.entities), func(i int) bool {
		return s.entities[i].entity >= entity
	})

	if idx == len(s.entities) {
		return "", nil, false
	}

	if s.entities[idx].entity == entity {
		return s.entities[idx].algo, s.entities[idx].hash, true
	}

	return "", nil, false
}

// Entities returns the recorded names, sorted.
func (s *Sumfile) Entities() []string {
	var names []string
	for _, he := range s.entities {
		names = append(names, he.entity)
	}

	return names
}

// LoadFile reads a ledger from disk. A missing file is an empty ledger.
func LoadFile(path string) (*Sumfile, error) {
	var sf Sumfile

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &sf, nil
		}

		return nil, err
	}

	defer f.Close()

	err = sf.Load(f)
	if err != nil {
		return nil, err
	}

	return &sf, nil
}

func (s *Sumfile) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer f.Close()

	return s.Save(f)
}
