package postgres

const schema = `
CREATE TABLE IF NOT EXISTS stores (
	store   TEXT PRIMARY KEY,
	root_id TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS nodes (
	store       TEXT NOT NULL,
	id          TEXT NOT NULL,
	type        TEXT NOT NULL,
	properties  JSONB NOT NULL DEFAULT '{}'::jsonb,
	inherit_acl BOOLEAN NOT NULL DEFAULT TRUE,
	seq         BIGSERIAL,
	PRIMARY KEY (store, id)
);
CREATE TABLE IF NOT EXISTS child_assocs (
	store      TEXT NOT NULL,
	parent_id  TEXT NOT NULL,
	child_id   TEXT NOT NULL,
	type       TEXT NOT NULL,
	name       TEXT NOT NULL,
	is_primary BOOLEAN NOT NULL,
	seq        BIGSERIAL
);
CREATE INDEX IF NOT EXISTS child_assocs_parent_idx ON child_assocs (store, parent_id);
CREATE INDEX IF NOT EXISTS child_assocs_child_idx ON child_assocs (store, child_id);
CREATE TABLE IF NOT EXISTS node_aspects (
	store   TEXT NOT NULL,
	node_id TEXT NOT NULL,
	aspect  TEXT NOT NULL,
	seq     BIGSERIAL,
	PRIMARY KEY (store, node_id, aspect)
);
CREATE TABLE IF NOT EXISTS node_acl (
	store      TEXT NOT NULL,
	node_id    TEXT NOT NULL,
	status     TEXT NOT NULL,
	authority  TEXT NOT NULL,
	permission TEXT NOT NULL,
	seq        BIGSERIAL
);
`

const (
	queryEnsureStore = `INSERT INTO stores (store, root_id) VALUES ($1, $2) ON CONFLICT (store) DO NOTHING`
	queryStoreRoot   = `SELECT root_id FROM stores WHERE store = $1`
	queryInsertNode  = `INSERT INTO nodes (store, id, type, properties) VALUES ($1, $2, $3, $4::jsonb)
	ON CONFLICT (store, id) DO NOTHING`
	queryInsertAssoc = `INSERT INTO child_assocs (store, parent_id, child_id, type, name, is_primary)
	VALUES ($1, $2, $3, $4, $5, $6)`
	querySelectNode   = `SELECT type, properties, inherit_acl FROM nodes WHERE store = $1 AND id = $2`
	queryNodeExists   = `SELECT EXISTS (SELECT 1 FROM nodes WHERE store = $1 AND id = $2)`
	querySelectAspect = `SELECT aspect FROM node_aspects WHERE store = $1 AND node_id = $2 ORDER BY seq`
	querySelectACL    = `SELECT status, authority, permission FROM node_acl WHERE store = $1 AND node_id = $2 ORDER BY seq`
	queryPrimaryAssoc = `SELECT parent_id, child_id, type, name, is_primary FROM child_assocs
	WHERE store = $1 AND child_id = $2 AND is_primary`
	queryChildren = `SELECT parent_id, child_id, type, name, is_primary FROM child_assocs
	WHERE store = $1 AND parent_id = $2 ORDER BY seq`
	queryMergeProperties = `UPDATE nodes SET properties = properties || $3::jsonb WHERE store = $1 AND id = $2`
	queryInsertAspect    = `INSERT INTO node_aspects (store, node_id, aspect) VALUES ($1, $2, $3)
	ON CONFLICT (store, node_id, aspect) DO NOTHING`
	queryInsertACE = `INSERT INTO node_acl (store, node_id, status, authority, permission) VALUES ($1, $2, $3, $4, $5)`
	queryInherit   = `UPDATE nodes SET inherit_acl = $3 WHERE store = $1 AND id = $2`
	queryUnlink    = `DELETE FROM child_assocs WHERE store = $1 AND child_id = $2 AND is_primary`
	queryTree      = `WITH RECURSIVE tree(id) AS (
		SELECT $2::text
		UNION
		SELECT a.child_id FROM child_assocs a JOIN tree t ON a.parent_id = t.id
		WHERE a.store = $1 AND a.is_primary
	)
	SELECT id FROM tree`
	queryDeleteAssocs  = `DELETE FROM child_assocs WHERE store = $1 AND (child_id = ANY($2) OR parent_id = ANY($2))`
	queryDeleteAspects = `DELETE FROM node_aspects WHERE store = $1 AND node_id = ANY($2)`
	queryDeleteACL     = `DELETE FROM node_acl WHERE store = $1 AND node_id = ANY($2)`
	queryDeleteNodes   = `DELETE FROM nodes WHERE store = $1 AND id = ANY($2)`
)
