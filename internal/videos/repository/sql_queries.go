package repository

const (
	videoColumns = `id, title, description, source_url, duration, status, created_at, updated_at`

	createVideoQuery = `INSERT INTO videos (title, description, source_url, duration, status)
					VALUES ($1, $2, $3, $4, $5) RETURNING ` + videoColumns
	getVideoByIDQuery = `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	updateVideoQuery  = `UPDATE videos
					SET title = COALESCE($1, title),
					    description = COALESCE($2, description),
					    duration = COALESCE($3, duration),
					    updated_at = now()
					WHERE id = $4
					RETURNING ` + videoColumns
	setSourceQuery = `UPDATE videos
					SET source_url = $1,
					    duration = COALESCE($2, duration),
					    updated_at = now()
					WHERE id = $3 AND source_url = ''
					RETURNING ` + videoColumns
	listVideosQuery = `SELECT ` + videoColumns + ` FROM videos
					WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
					  AND ($2 = '' OR status = $2)
					ORDER BY id OFFSET $3 LIMIT $4`
	deleteVideoQuery = `DELETE FROM videos WHERE id = $1`
	// expanded with sqlx.In and rebound for the driver
	compareAndSetStatusQuery = `UPDATE videos
					SET status = ?, updated_at = now()
					WHERE id = ? AND status IN (?)
					RETURNING ` + videoColumns
)
