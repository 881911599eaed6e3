package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Note fields, in model order
const (
	fieldFront = iota
	fieldBack
	fieldAudio
	fieldImage
	fieldNotes
)

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName   string
	deckID     int64
	modelID    int64
	created    time.Time
	cards      []Card
	mediaFiles map[string]int // media name -> numbered file in the package
	mediaOrder []string       // source paths in numbering order
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	now := time.Now()
	return &APKGGenerator{
		deckName:   deckName,
		deckID:     now.UnixMilli(),
		modelID:    now.UnixMilli() + 1,
		created:    now,
		mediaFiles: make(map[string]int),
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddCards adds several cards
func (g *APKGGenerator) AddCards(cards []Card) {
	g.cards = append(g.cards, cards...)
}

// Stats returns statistics about the cards added so far
func (g *APKGGenerator) Stats() (totalCards, withAudio, withImages int) {
	return stats(g.cards)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "aksharmala_anki_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the note fields reference the assigned names.
	g.collectMedia()

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := g.createZipPackage(dbPath, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// collectMedia numbers every distinct audio and image file
func (g *APKGGenerator) collectMedia() {
	add := func(path string) {
		if path == "" {
			return
		}
		name := mediaName(path)
		if _, ok := g.mediaFiles[name]; ok {
			return
		}
		g.mediaFiles[name] = len(g.mediaOrder)
		g.mediaOrder = append(g.mediaOrder, path)
	}
	for _, card := range g.cards {
		add(card.AudioFile)
		add(card.ImageFile)
	}
}

// createDatabase creates the Anki SQLite collection
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the schema version 11 tables
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
			scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
			usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
			models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
			mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
			flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
			flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
			ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
			type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
			ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
			lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
			odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
			ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
			factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
		)`,
		`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

func deckConfig(id int64, name, desc string, mod int64) map[string]interface{} {
	return map[string]interface{}{
		"id":               id,
		"name":             name,
		"mod":              mod,
		"desc":             desc,
		"collapsed":        false,
		"dyn":              0,
		"conf":             1,
		"usn":              0,
		"newToday":         []int{0, 0},
		"revToday":         []int{0, 0},
		"lrnToday":         []int{0, 0},
		"timeToday":        []int{0, 0},
		"browserCollapsed": false,
		"extendNew":        10,
		"extendRev":        50,
	}
}

// insertCollection inserts the collection metadata row
func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := g.created.Unix()

	decksJSON, err := json.Marshal(map[string]interface{}{
		"1": deckConfig(1, "Default", "", now),
		strconv.FormatInt(g.deckID, 10): deckConfig(g.deckID, g.deckName,
			"Nepali and English alphabet, barakhari and numbers", now),
	})
	if err != nil {
		return err
	}

	modelsJSON, err := json.Marshal(map[string]interface{}{
		strconv.FormatInt(g.modelID, 10): g.noteType(),
	})
	if err != nil {
		return err
	}

	confJSON, err := json.Marshal(map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      strconv.FormatInt(g.modelID, 10),
		"dayLearnFirst": false,
	})
	if err != nil {
		return err
	}

	dconfJSON, err := json.Marshal(map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}",
	)
	return err
}

func field(name string, ord, size int) map[string]interface{} {
	return map[string]interface{}{
		"name":   name,
		"ord":    ord,
		"sticky": false,
		"rtl":    false,
		"font":   "Noto Sans Devanagari",
		"size":   size,
		"media":  []string{},
	}
}

// noteType is the "Read" and "Listen" model. Listen cards exist only for
// notes with audio.
func (g *APKGGenerator) noteType() map[string]interface{} {
	return map[string]interface{}{
		"id":        g.modelID,
		"name":      "Aksharmala (Read + Listen)",
		"type":      0,
		"mod":       g.created.Unix(),
		"usn":       -1,
		"sortf":     fieldFront,
		"did":       g.deckID,
		"req":       [][]interface{}{{0, "all", []int{fieldFront}}, {1, "all", []int{fieldAudio}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  "",
		"latexPost": "",
		"flds": []map[string]interface{}{
			field("Front", fieldFront, 48),
			field("Back", fieldBack, 24),
			field("Audio", fieldAudio, 20),
			field("Image", fieldImage, 20),
			field("Notes", fieldNotes, 16),
		},
		"tmpls": []map[string]interface{}{
			{"name": "Read", "ord": 0, "qfmt": readFront, "afmt": readBack, "did": nil, "bqfmt": "", "bafmt": ""},
			{"name": "Listen", "ord": 1, "qfmt": listenFront, "afmt": listenBack, "did": nil, "bqfmt": "", "bafmt": ""},
		},
		"css": cardCSS,
	}
}

const readFront = `<div class="glyph">{{Front}}</div>`

const readBack = `{{FrontSide}}

<hr id="answer">

<div class="back">{{Back}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
{{#Image}}<div class="image">{{Image}}</div>{{/Image}}
{{#Notes}}<div class="notes">{{Notes}}</div>{{/Notes}}`

const listenFront = `{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}`

const listenBack = `{{FrontSide}}

<hr id="answer">

<div class="glyph">{{Front}}</div>
<div class="back">{{Back}}</div>`

const cardCSS = `.card {
  font-family: "Noto Sans Devanagari", Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.glyph {
  font-size: 72px;
  font-weight: bold;
  color: #c0392b;
  margin: 20px 0;
}

.back {
  font-size: 28px;
  color: #2c3e50;
}

.image img {
  max-width: 300px;
  height: auto;
}

.notes {
  font-size: 16px;
  color: #7f8c8d;
  font-style: italic;
}`

// insertNotesAndCards inserts one note per card, with a Read card and, when
// the note has audio, a Listen card
func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	base := g.created.UnixMilli()
	mod := g.created.Unix()

	for i, card := range g.cards {
		noteID := base + int64(i*3)

		audioField := ""
		if card.AudioFile != "" {
			audioField = fmt.Sprintf("[sound:%s]", mediaName(card.AudioFile))
		}
		imageField := ""
		if card.ImageFile != "" {
			imageField = fmt.Sprintf(`<img src="%s">`, mediaName(card.ImageFile))
		}

		fields := strings.Join([]string{
			card.Front,
			card.Back,
			audioField,
			imageField,
			notesField(card),
		}, "\x1f")

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,
			noteGUID(card),
			g.modelID,
			mod,
			-1,
			" "+card.Tag+" ",
			fields,
			card.Front,
			checksum(card.Front),
			0,
			"",
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		if err := g.insertCard(db, noteID+1, noteID, 0, mod); err != nil {
			return fmt.Errorf("failed to insert read card: %w", err)
		}
		if audioField == "" {
			continue
		}
		if err := g.insertCard(db, noteID+2, noteID, 1, mod); err != nil {
			return fmt.Errorf("failed to insert listen card: %w", err)
		}
	}

	return nil
}

func (g *APKGGenerator) insertCard(db *sql.DB, id, noteID int64, ord int, mod int64) error {
	_, err := db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		noteID,
		g.deckID,
		ord,
		mod,
		-1, // usn
		0,  // type: new
		0,  // queue: new
		id, // due: position for new cards
		0, 0, 0, 0, 0, 0, 0, 0,
		"",
	)
	return err
}

func notesField(card Card) string {
	var parts []string
	if card.Sound != "" && card.Sound != card.Back {
		parts = append(parts, card.Sound)
	}
	if card.Example != "" {
		parts = append(parts, card.Example)
	}
	return strings.Join(parts, " · ")
}

// noteGUID is stable across exports so re-importing updates notes instead
// of duplicating them
func noteGUID(card Card) string {
	return "ak_" + card.Tag + "_" + card.Front
}

// checksum is Anki's sort field checksum: the first 8 hex digits of the
// SHA-1 as an integer
func checksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// createZipPackage writes collection, media map and numbered media files
func (g *APKGGenerator) createZipPackage(dbPath, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	if err := addFile(archive, "collection.anki2", dbPath); err != nil {
		return err
	}

	mapping := make(map[string]string, len(g.mediaFiles))
	for name, num := range g.mediaFiles {
		mapping[strconv.Itoa(num)] = name
	}
	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	w, err := archive.Create("media")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}

	for num, src := range g.mediaOrder {
		if err := addFile(archive, strconv.Itoa(num), src); err != nil {
			return fmt.Errorf("failed to add media file %s: %w", src, err)
		}
	}

	return archive.Close()
}

func addFile(archive *zip.Writer, name, src string) error {
	file, err := os.Open(src)
	if err != nil {
		return err
	}
	defer file.Close()

	writer, err := archive.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, file)
	return err
}
