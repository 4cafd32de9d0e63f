package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/gtwndtl/travelbook-backend/entity"
)

// headerIndex finds a column by any of its accepted header spellings.
func headerIndex(headers []string, candidates ...string) int {
	for i, h := range headers {
		hl := strings.ToLower(strings.TrimSpace(h))
		for _, c := range candidates {
			if hl == strings.ToLower(c) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// upsertLocation finds or creates a location by name, caching ids so bulk
// imports don't query per row.
func upsertLocation(db *gorm.DB, cache map[string]uint, name, country string, lat, long float64) (uint, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}

	var loc entity.Location
	err := db.Where("name = ?", name).First(&loc).Error
	if err == nil {
		cache[key] = loc.ID
		return loc.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}

	loc = entity.Location{Name: name, Country: country, Lat: lat, Long: long}
	if err := db.Create(&loc).Error; err != nil {
		return 0, err
	}
	cache[key] = loc.ID
	return loc.ID, nil
}

// LoadPlacesXLSX bulk-imports places from a spreadsheet. Expected columns
// (header row required): name, description, category, image_url, location,
// country, lat, long. Rows missing name or location are skipped.
func LoadPlacesXLSX(db *gorm.DB, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%s: empty sheet", path)
	}

	header := rows[0]
	idxName := headerIndex(header, "name")
	idxDesc := headerIndex(header, "description", "desc")
	idxCategory := headerIndex(header, "category", "type")
	idxImage := headerIndex(header, "image_url", "image", "thumbnail_url")
	idxLocation := headerIndex(header, "location", "city")
	idxCountry := headerIndex(header, "country")
	idxLat := headerIndex(header, "lat", "latitude")
	idxLong := headerIndex(header, "long", "lng", "longitude")
	if idxName < 0 || idxLocation < 0 {
		return 0, fmt.Errorf("%s: missing name/location columns", path)
	}

	locCache := map[string]uint{}
	imported := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name := cell(row, idxName)
		locName := cell(row, idxLocation)
		if name == "" || locName == "" {
			continue
		}

		lat, _ := strconv.ParseFloat(cell(row, idxLat), 64)
		long, _ := strconv.ParseFloat(cell(row, idxLong), 64)
		locID, err := upsertLocation(db, locCache, locName, cell(row, idxCountry), lat, long)
		if err != nil {
			return imported, err
		}

		place := entity.Place{
			Name:        name,
			Description: cell(row, idxDesc),
			Category:    cell(row, idxCategory),
			ImageURL:    cell(row, idxImage),
			LocationID:  locID,
		}
		if err := db.Create(&place).Error; err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
