// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"scriptum/internal/models"
	"scriptum/internal/slug"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumBooks    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d books...", opts.NumUsers, opts.NumBooks)

	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	genres, themes, err := createOrGetTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("%d genres and %d themes available", len(genres), len(themes))

	books, err := createBooks(db, users, genres, themes, opts.NumBooks)
	if err != nil {
		return fmt.Errorf("failed to create books: %w", err)
	}
	log.Printf("%d books created", len(books))

	if err := createChapters(db, books); err != nil {
		return fmt.Errorf("failed to create chapters: %w", err)
	}
	if err := createCharacters(db, books); err != nil {
		return fmt.Errorf("failed to create characters: %w", err)
	}
	if err := createWorldbuilding(db, books); err != nil {
		return fmt.Errorf("failed to create worldbuilding entries: %w", err)
	}
	if err := createReviews(db, users, books); err != nil {
		return fmt.Errorf("failed to create reviews: %w", err)
	}
	if err := createLibraries(db, users, books); err != nil {
		return fmt.Errorf("failed to create favorites and follows: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete children before parents so foreign keys never block.
	tables := []string{
		"chapter_comments", "chapters", "characters", "places", "creatures",
		"reviews", "favorites", "followed_authors",
		"book_genres", "book_themes", "books", "genres", "themes", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// truncated caps a generated string at max runes, trimming a trailing
// partial word so column limits never reject fake content.
func truncated(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut
}

// distinct draws n unique values from gen, retrying on duplicates. It gives
// up growing after a bounded number of draws so a small value pool cannot
// spin forever.
func distinct(n int, gen func() string) []string {
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for tries := 0; len(out) < n && tries < n*20; tries++ {
		v := gen()
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func capitalized(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sample returns n distinct indexes drawn from [0, size).
func sample(size, n int) []int {
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	gofakeit.ShuffleInts(idx)
	if n > size {
		n = size
	}
	return idx[:n]
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// All seeded accounts share one password to keep manual testing simple.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			Pseudo:     truncated(fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i+1), 30),
			FirstName:  truncated(first, 30),
			LastName:   truncated(last, 30),
			AuthorName: truncated(first+" "+last, 50),
			Email:      fmt.Sprintf("%d.%s", i+1, gofakeit.Email()),
			Password:   string(hashed),
			BirthDate:  gofakeit.DateRange(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)),
			Token:      uuid.NewString(),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createOrGetTags(db *gorm.DB) ([]models.Genre, []models.Theme, error) {
	genres := make([]models.Genre, 0, 10)
	for _, name := range distinct(10, gofakeit.BookGenre) {
		var genre models.Genre
		if err := db.Where(models.Genre{Name: truncated(name, 30)}).FirstOrCreate(&genre).Error; err != nil {
			return nil, nil, err
		}
		genres = append(genres, genre)
	}

	themes := make([]models.Theme, 0, 15)
	for _, name := range distinct(15, func() string { return capitalized(gofakeit.Noun()) }) {
		var theme models.Theme
		if err := db.Where(models.Theme{Name: truncated(name, 30)}).FirstOrCreate(&theme).Error; err != nil {
			return nil, nil, err
		}
		themes = append(themes, theme)
	}
	return genres, themes, nil
}

func createBooks(db *gorm.DB, users []models.User, genres []models.Genre, themes []models.Theme, count int) ([]models.Book, error) {
	publicTypes := []models.PublicType{
		models.PublicTypeGeneral, models.PublicTypeYoungAdult, models.PublicTypeAdult,
	}

	books := make([]models.Book, 0, count)
	for i := 0; i < count; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		title := truncated(gofakeit.BookTitle(), 50)

		unique, err := slug.Unique(title, func(candidate string) (bool, error) {
			var n int64
			err := db.Model(&models.Book{}).Where("slug = ?", candidate).Count(&n).Error
			return n > 0, err
		})
		if err != nil {
			return nil, err
		}

		book := models.Book{
			Title:       title,
			Slug:        unique,
			Description: gofakeit.Paragraph(1, 3, 8, " "),
			AuthorID:    author.ID,
			PublicType:  publicTypes[gofakeit.Number(0, len(publicTypes)-1)],
			State:       models.DefaultBookState,
		}
		// Roughly a third of the catalog belongs to a saga.
		if gofakeit.Number(0, 2) == 0 {
			tomeName := truncated(fmt.Sprintf("The %s Cycle", capitalized(gofakeit.Word())), 30)
			tomeNumber := gofakeit.Number(1, 3)
			book.IsSaga = true
			book.TomeName = &tomeName
			book.TomeNumber = &tomeNumber
		}

		for _, idx := range sample(len(genres), gofakeit.Number(1, 3)) {
			book.Genres = append(book.Genres, &genres[idx])
		}
		for _, idx := range sample(len(themes), gofakeit.Number(1, 4)) {
			book.Themes = append(book.Themes, &themes[idx])
		}

		if err := db.Create(&book).Error; err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func createChapters(db *gorm.DB, books []models.Book) error {
	for i := range books {
		chapters := []models.Chapter{
			{
				BookID:    books[i].ID,
				Title:     "Prologue",
				Content:   gofakeit.Paragraph(2, 3, 10, " "),
				Type:      models.ChapterTypePrologue,
				SortOrder: 0,
				Slug:      "prologue",
			},
		}
		nBody := gofakeit.Number(2, 5)
		for n := 1; n <= nBody; n++ {
			number := n
			chapters = append(chapters, models.Chapter{
				BookID:        books[i].ID,
				Title:         truncated(gofakeit.Sentence(4), 50),
				Content:       gofakeit.Paragraph(3, 4, 12, " "),
				Type:          models.ChapterTypeChapter,
				ChapterNumber: &number,
				SortOrder:     1,
				Slug:          fmt.Sprintf("chapter-%d", n),
			})
		}
		if err := db.Create(&chapters).Error; err != nil {
			return err
		}
	}
	return nil
}

func createCharacters(db *gorm.DB, books []models.Book) error {
	roles := []models.CharacterRole{
		models.CharacterRoleProtagonist, models.CharacterRoleAntagonist,
		models.CharacterRoleAlly, models.CharacterRoleNeutral,
	}
	sexes := []models.CharacterSex{
		models.CharacterSexFemale, models.CharacterSexMale, models.CharacterSexOther,
	}

	for i := range books {
		nChars := gofakeit.Number(2, 4)
		for _, name := range distinct(nChars, gofakeit.FirstName) {
			day := gofakeit.Number(1, 28)
			month := gofakeit.Number(1, 12)
			character := models.Character{
				BookID:     books[i].ID,
				Name:       truncated(name, 50),
				Slug:       slug.Make(name),
				Surname:    truncated(gofakeit.LastName(), 50),
				Role:       roles[gofakeit.Number(0, len(roles)-1)],
				Age:        gofakeit.Number(16, 65),
				Sex:        sexes[gofakeit.Number(0, len(sexes)-1)],
				Background: gofakeit.Paragraph(1, 2, 10, " "),
				Species:    "Human",
				Hometown:   truncated(gofakeit.City(), 30),
				Language:   truncated(gofakeit.Language(), 30),
				DayBirth:   &day,
				MonthBirth: &month,
			}
			for _, trait := range distinct(3, gofakeit.AdjectiveDescriptive) {
				character.Traits = append(character.Traits, trait)
			}
			if err := db.Create(&character).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createWorldbuilding(db *gorm.DB, books []models.Book) error {
	for i := range books {
		for _, name := range distinct(2, gofakeit.City) {
			place := models.Place{
				BookID:  books[i].ID,
				Name:    truncated(name, 30),
				Content: gofakeit.Sentence(12),
			}
			if err := db.Create(&place).Error; err != nil {
				return err
			}
		}
		creature := models.Creature{
			BookID:  books[i].ID,
			Name:    truncated(capitalized(gofakeit.Animal()), 30),
			Content: gofakeit.Sentence(12),
		}
		if err := db.Create(&creature).Error; err != nil {
			return err
		}
	}
	return nil
}

func createReviews(db *gorm.DB, users []models.User, books []models.Book) error {
	for i := range books {
		var scores []int
		for _, u := range users {
			// Authors never review their own book here, and around half
			// the remaining readers leave one.
			if u.ID == books[i].AuthorID || gofakeit.Bool() {
				continue
			}
			score := gofakeit.Number(1, 5)
			review := models.Review{
				BookID:  books[i].ID,
				UserID:  u.ID,
				Score:   score,
				Comment: gofakeit.Sentence(10),
			}
			if err := db.Create(&review).Error; err != nil {
				return err
			}
			scores = append(scores, score)
		}
		rating := models.AggregateRating(scores)
		if err := db.Model(&models.Book{}).Where("id = ?", books[i].ID).
			Update("rating", rating).Error; err != nil {
			return err
		}
	}
	return nil
}

func createLibraries(db *gorm.DB, users []models.User, books []models.Book) error {
	for _, u := range users {
		for i := range books {
			if gofakeit.Number(0, 3) != 0 {
				continue
			}
			favorite := models.Favorite{UserID: u.ID, BookID: books[i].ID}
			if err := db.Create(&favorite).Error; err != nil {
				return err
			}
			if books[i].AuthorID != u.ID && gofakeit.Bool() {
				follow := models.FollowedAuthor{UserID: u.ID, AuthorID: books[i].AuthorID}
				// A user may already follow this author via another book.
				if err := db.Where(models.FollowedAuthor{UserID: u.ID, AuthorID: books[i].AuthorID}).
					FirstOrCreate(&follow).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
