package mysql

const upsertCategorySQL = `
INSERT INTO categories (key_name, position)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE
  position   = VALUES(position),
  updated_at = CURRENT_TIMESTAMP
`

const deleteAttractionsSQL = `DELETE FROM attractions WHERE list_key = ?`

const insertAttractionsPrefix = "INSERT INTO attractions\n" +
	"  (list_key, position, id, nombre, descripcion, ubicacion, distancia, horario, precio, imagen, categoria, especialidades)\n" +
	"VALUES "

const attractionRow = "(?,?,?,?,?,?,?,?,?,?,?,?)"

const deleteFeaturedSQL = `DELETE FROM featured`

const insertFeaturedPrefix = "INSERT INTO featured (position, attraction_id) VALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// LEFT JOIN keeps empty categories; their single row has a NULL attraction.
const loadAttractionsSQL = `
SELECT
  c.key_name,
  a.id, a.nombre, a.descripcion, a.ubicacion, a.distancia,
  a.horario, a.precio, a.imagen, a.categoria, a.especialidades
FROM categories c
LEFT JOIN attractions a ON a.list_key = c.key_name
ORDER BY c.position, a.position
`

const loadFeaturedSQL = `SELECT attraction_id FROM featured ORDER BY position`
