package places

import (
	"fmt"
	"strings"
)

// likeEscaper escapes the LIKE wildcards so user text matches literally.
// PostgreSQL uses backslash as the default LIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// builtQuery is a page query plus the matching count query. The count query
// uses the first len(countArgs) placeholders of args.
type builtQuery struct {
	query     string
	count     string
	args      []any
	countArgs []any
}

type filterBuilder struct {
	where []string
	args  []any
}

func (b *filterBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *filterBuilder) clause() string {
	if len(b.where) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.where, " AND ")
}

// common applies the filters shared by browse and search.
func (b *filterBuilder) common(c Criteria) {
	if c.CategoryID != nil {
		b.where = append(b.where, "p.category_id = "+b.bind(*c.CategoryID))
	}
	if c.CityID != nil {
		b.where = append(b.where, "p.city_id = "+b.bind(*c.CityID))
	}
	if q := strings.TrimSpace(c.Query); q != "" {
		ph := b.bind(containsPattern(q))
		b.where = append(b.where, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", ph, ph))
	}
}

const summaryColumns = `p.id, p.name, p.slug, p.description, p.address, p.photo_url, p.price_level,
	       p.latitude, p.longitude,
	       p.category_id, c.name AS category_name,
	       p.city_id, ct.name AS city_name`

const placeJoins = `FROM places p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN cities ct ON ct.id = p.city_id`

// buildSearchQuery ranks places by their live average over approved
// reviews. Places without approved reviews sort last and never pass a
// rating floor.
func buildSearchQuery(c Criteria) builtQuery {
	b := &filterBuilder{}
	b.common(c)
	where := b.clause()

	having := ""
	if c.MinRating != nil {
		having = "HAVING AVG(r.rating) >= " + b.bind(*c.MinRating) + "::numeric"
	}

	grouped := fmt.Sprintf(`%s
		LEFT JOIN reviews r ON r.place_id = p.id AND r.moderation_status = 'approved'
		%s
		GROUP BY p.id, c.id, ct.id
		%s`, placeJoins, where, having)

	countArgs := append([]any(nil), b.args...)
	limit := b.bind(c.Pagination.Limit)
	offset := b.bind(c.Pagination.Offset)

	query := fmt.Sprintf(`
		SELECT %s,
		       AVG(r.rating)::float8 AS avg_rating,
		       COUNT(r.id) AS review_count,
		       COUNT(*) OVER() AS total_count
		%s
		ORDER BY avg_rating DESC NULLS LAST, p.name ASC, p.id ASC
		LIMIT %s OFFSET %s`, summaryColumns, grouped, limit, offset)

	count := fmt.Sprintf(`SELECT COUNT(*) FROM (SELECT p.id %s) AS matched`, grouped)

	return builtQuery{query: query, count: count, args: b.args, countArgs: countArgs}
}

// buildBrowseQuery lists places alphabetically using the cached rating
// columns, without touching the review ledger.
func buildBrowseQuery(c Criteria) builtQuery {
	b := &filterBuilder{}
	b.common(c)
	if c.MinRating != nil {
		b.where = append(b.where, "p.average_rating >= "+b.bind(*c.MinRating)+"::numeric")
	}
	where := b.clause()

	countArgs := append([]any(nil), b.args...)
	limit := b.bind(c.Pagination.Limit)
	offset := b.bind(c.Pagination.Offset)

	query := fmt.Sprintf(`
		SELECT %s,
		       p.average_rating::float8 AS avg_rating,
		       p.review_count,
		       COUNT(*) OVER() AS total_count
		%s
		%s
		ORDER BY p.name ASC, p.id ASC
		LIMIT %s OFFSET %s`, summaryColumns, placeJoins, where, limit, offset)

	count := fmt.Sprintf(`SELECT COUNT(*) %s %s`, placeJoins, where)

	return builtQuery{query: query, count: count, args: b.args, countArgs: countArgs}
}
