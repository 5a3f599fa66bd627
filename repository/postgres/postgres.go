// Package postgres contains the repository.Store persisting the nodes in the
// PostgreSQL database with the pgx connection pool. The store registers its
// factory with the 'postgres' driver name and creates its tables on connect.
package postgres

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/log"
	"github.com/neuronlabs/viewimport/qname"
	"github.com/neuronlabs/viewimport/repository"
)

// DriverName is the driver name of the postgres store factory.
const DriverName = "postgres"

var logger = log.NewModuleLogger("postgres")

func init() {
	if err := repository.RegisterFactory(&Factory{}); err != nil {
		log.Errorf("Registering postgres factory failed: %v", err)
	}
}

// compile time check for the interfaces.
var (
	_ repository.Store   = &Store{}
	_ repository.Factory = &Factory{}
)

// Factory creates the postgres stores.
type Factory struct{}

// DriverName implements repository.Factory.
func (f *Factory) DriverName() string {
	return DriverName
}

// New implements repository.Factory.
func (f *Factory) New(ctx context.Context, cfg *config.Repository) (repository.Store, error) {
	ref, err := repository.ParseStoreRef(cfg.Store)
	if err != nil {
		return nil, err
	}
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionURL())
	if err != nil {
		return nil, errors.Wrap(err, class.RepositoryConnectionFailed, "parsing database url failed")
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, class.RepositoryConnectionFailed, "connecting to database failed")
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, class.RepositoryConnectionFailed, "ping database failed")
	}
	s, err := New(ctx, pool, ref)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Store is the node store backed by the postgres database.
type Store struct {
	pool *pgxpool.Pool
	ref  repository.StoreRef
	key  string
	root string
}

// New creates the store over the 'pool'. The tables and the store root node are
// created if they don't exist yet.
func New(ctx context.Context, pool *pgxpool.Pool, ref repository.StoreRef) (*Store, error) {
	s := &Store{pool: pool, ref: ref, key: ref.String()}
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, queryError(err, "creating schema failed")
	}
	if err := s.ensureRoot(ctx); err != nil {
		return nil, err
	}
	logger.Debugf("Store: '%s' root: '%s'", s.key, s.root)
	return s, nil
}

// StoreRef implements repository.Store.
func (s *Store) StoreRef() repository.StoreRef {
	return s.ref
}

// Root implements repository.Store.
func (s *Store) Root(context.Context) (repository.NodeRef, error) {
	return s.nodeRef(s.root), nil
}

// CreateNode implements repository.Store.
func (s *Store) CreateNode(ctx context.Context, def repository.NodeDefinition) (repository.NodeRef, error) {
	if err := s.checkRef(ctx, def.Parent); err != nil {
		return repository.NodeRef{}, err
	}
	props, err := encodeProperties(def.Properties)
	if err != nil {
		return repository.NodeRef{}, err
	}
	id := def.ID
	if id == "" {
		id = uuid.New().String()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return repository.NodeRef{}, queryError(err, "begin transaction failed")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, queryInsertNode, s.key, id, def.Type.String(), props)
	if err != nil {
		return repository.NodeRef{}, queryError(err, "inserting node failed")
	}
	if tag.RowsAffected() == 0 {
		return repository.NodeRef{}, errors.Newf(class.RepositoryNodeExists, "node: '%s' already exists", id)
	}
	if _, err = tx.Exec(ctx, queryInsertAssoc, s.key, def.Parent.ID, id, def.AssociationType.String(), def.ChildName.String(), true); err != nil {
		return repository.NodeRef{}, queryError(err, "inserting child association failed")
	}
	if err = tx.Commit(ctx); err != nil {
		return repository.NodeRef{}, queryError(err, "commit failed")
	}
	ref := s.nodeRef(id)
	logger.Debug2f("Created node: '%s' of type: '%s'", ref, def.Type)
	return ref, nil
}

// GetNode implements repository.Store.
func (s *Store) GetNode(ctx context.Context, ref repository.NodeRef) (*repository.Node, error) {
	if ref.Store != s.ref {
		return nil, notFound(ref)
	}
	var (
		typeName string
		props    []byte
		inherit  bool
	)
	err := s.pool.QueryRow(ctx, querySelectNode, s.key, ref.ID).Scan(&typeName, &props, &inherit)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(ref)
	}
	if err != nil {
		return nil, queryError(err, "selecting node failed")
	}

	n := &repository.Node{Ref: ref, InheritPermissions: inherit}
	if n.Type, err = parseName(typeName); err != nil {
		return nil, err
	}
	if n.Properties, err = decodeProperties(props); err != nil {
		return nil, err
	}
	if n.Aspects, err = s.aspects(ctx, ref.ID); err != nil {
		return nil, err
	}
	if n.ACL, err = s.acl(ctx, ref.ID); err != nil {
		return nil, err
	}
	assocs, err := s.assocs(ctx, queryPrimaryAssoc, ref.ID)
	if err != nil {
		return nil, err
	}
	if len(assocs) > 0 {
		n.Parent = assocs[0]
	}
	return n, nil
}

// Exists implements repository.Store.
func (s *Store) Exists(ctx context.Context, ref repository.NodeRef) (bool, error) {
	if ref.Store != s.ref {
		return false, nil
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, queryNodeExists, s.key, ref.ID).Scan(&exists); err != nil {
		return false, queryError(err, "checking node failed")
	}
	return exists, nil
}

// DeleteNode implements repository.Store.
func (s *Store) DeleteNode(ctx context.Context, ref repository.NodeRef) error {
	if err := s.checkRef(ctx, ref); err != nil {
		return err
	}
	if ref.ID == s.root {
		return errors.New(class.RepositoryNodeRoot, "can't delete the store root")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return queryError(err, "begin transaction failed")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	rows, err := tx.Query(ctx, queryTree, s.key, ref.ID)
	if err != nil {
		return queryError(err, "selecting node tree failed")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return queryError(err, "scanning node tree failed")
	}
	for _, query := range []string{queryDeleteAssocs, queryDeleteAspects, queryDeleteACL, queryDeleteNodes} {
		if _, err = tx.Exec(ctx, query, s.key, ids); err != nil {
			return queryError(err, "deleting nodes failed")
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return queryError(err, "commit failed")
	}
	logger.Debug2f("Deleted: %d nodes", len(ids))
	return nil
}

// SetProperties implements repository.Store.
func (s *Store) SetProperties(ctx context.Context, ref repository.NodeRef, props map[qname.QName]repository.Value) error {
	data, err := encodeProperties(props)
	if err != nil {
		return err
	}
	return s.update(ctx, ref, queryMergeProperties, data)
}

// AddAspect implements repository.Store.
func (s *Store) AddAspect(ctx context.Context, ref repository.NodeRef, aspect qname.QName) error {
	if err := s.checkRef(ctx, ref); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, queryInsertAspect, s.key, ref.ID, aspect.String()); err != nil {
		return queryError(err, "inserting aspect failed")
	}
	return nil
}

// SetPermission implements repository.Store.
func (s *Store) SetPermission(ctx context.Context, ref repository.NodeRef, ace repository.AccessControlEntry) error {
	if err := s.checkRef(ctx, ref); err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, queryInsertACE, s.key, ref.ID, ace.Status.String(), ace.Authority, ace.Permission); err != nil {
		return queryError(err, "inserting access control entry failed")
	}
	return nil
}

// SetInheritPermissions implements repository.Store.
func (s *Store) SetInheritPermissions(ctx context.Context, ref repository.NodeRef, inherit bool) error {
	return s.update(ctx, ref, queryInherit, inherit)
}

// AddChild implements repository.Store.
func (s *Store) AddChild(ctx context.Context, assoc repository.ChildAssociation) error {
	if err := s.checkRef(ctx, assoc.Parent); err != nil {
		return err
	}
	if err := s.checkRef(ctx, assoc.Child); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, queryInsertAssoc, s.key, assoc.Parent.ID, assoc.Child.ID, assoc.Type.String(), assoc.Name.String(), false)
	if err != nil {
		return queryError(err, "inserting child association failed")
	}
	return nil
}

// Move implements repository.Store.
func (s *Store) Move(ctx context.Context, ref, parent repository.NodeRef, assocType, childName qname.QName) error {
	if err := s.checkRef(ctx, ref); err != nil {
		return err
	}
	if err := s.checkRef(ctx, parent); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return queryError(err, "begin transaction failed")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err = tx.Exec(ctx, queryUnlink, s.key, ref.ID); err != nil {
		return queryError(err, "removing primary association failed")
	}
	if _, err = tx.Exec(ctx, queryInsertAssoc, s.key, parent.ID, ref.ID, assocType.String(), childName.String(), true); err != nil {
		return queryError(err, "inserting child association failed")
	}
	if err = tx.Commit(ctx); err != nil {
		return queryError(err, "commit failed")
	}
	return nil
}

// Children implements repository.Store.
func (s *Store) Children(ctx context.Context, parent repository.NodeRef) ([]repository.ChildAssociation, error) {
	if err := s.checkRef(ctx, parent); err != nil {
		return nil, err
	}
	return s.assocs(ctx, queryChildren, parent.ID)
}

// Close implements repository.Store.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func (s *Store) ensureRoot(ctx context.Context) error {
	rootID := uuid.New().String()
	rootType := qname.New(qname.SystemModelURI, "store_root")

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return queryError(err, "begin transaction failed")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, queryEnsureStore, s.key, rootID)
	if err != nil {
		return queryError(err, "inserting store failed")
	}
	if tag.RowsAffected() == 1 {
		if _, err = tx.Exec(ctx, queryInsertNode, s.key, rootID, rootType.String(), "{}"); err != nil {
			return queryError(err, "inserting store root failed")
		}
	}
	if err = tx.QueryRow(ctx, queryStoreRoot, s.key).Scan(&s.root); err != nil {
		return queryError(err, "selecting store root failed")
	}
	if err = tx.Commit(ctx); err != nil {
		return queryError(err, "commit failed")
	}
	return nil
}

func (s *Store) update(ctx context.Context, ref repository.NodeRef, query string, value interface{}) error {
	if ref.Store != s.ref {
		return notFound(ref)
	}
	tag, err := s.pool.Exec(ctx, query, s.key, ref.ID, value)
	if err != nil {
		return queryError(err, "updating node failed")
	}
	if tag.RowsAffected() == 0 {
		return notFound(ref)
	}
	return nil
}

func (s *Store) checkRef(ctx context.Context, ref repository.NodeRef) error {
	exists, err := s.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !exists {
		return notFound(ref)
	}
	return nil
}

func (s *Store) aspects(ctx context.Context, id string) ([]qname.QName, error) {
	rows, err := s.pool.Query(ctx, querySelectAspect, s.key, id)
	if err != nil {
		return nil, queryError(err, "selecting aspects failed")
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, queryError(err, "scanning aspects failed")
	}
	aspects := make([]qname.QName, 0, len(names))
	for _, name := range names {
		aspect, err := parseName(name)
		if err != nil {
			return nil, err
		}
		aspects = append(aspects, aspect)
	}
	return aspects, nil
}

func (s *Store) acl(ctx context.Context, id string) ([]repository.AccessControlEntry, error) {
	rows, err := s.pool.Query(ctx, querySelectACL, s.key, id)
	if err != nil {
		return nil, queryError(err, "selecting access control entries failed")
	}
	defer rows.Close()

	var entries []repository.AccessControlEntry
	for rows.Next() {
		var status string
		ace := repository.AccessControlEntry{}
		if err = rows.Scan(&status, &ace.Authority, &ace.Permission); err != nil {
			return nil, queryError(err, "scanning access control entry failed")
		}
		if ace.Status, err = repository.ParseAccessStatus(status); err != nil {
			return nil, err
		}
		entries = append(entries, ace)
	}
	if err = rows.Err(); err != nil {
		return nil, queryError(err, "reading access control entries failed")
	}
	return entries, nil
}

func (s *Store) assocs(ctx context.Context, query string, id string) ([]repository.ChildAssociation, error) {
	rows, err := s.pool.Query(ctx, query, s.key, id)
	if err != nil {
		return nil, queryError(err, "selecting child associations failed")
	}
	defer rows.Close()

	var assocs []repository.ChildAssociation
	for rows.Next() {
		var parentID, childID, assocType, name string
		assoc := repository.ChildAssociation{}
		if err = rows.Scan(&parentID, &childID, &assocType, &name, &assoc.Primary); err != nil {
			return nil, queryError(err, "scanning child association failed")
		}
		assoc.Parent, assoc.Child = s.nodeRef(parentID), s.nodeRef(childID)
		if assoc.Type, err = parseName(assocType); err != nil {
			return nil, err
		}
		if assoc.Name, err = parseName(name); err != nil {
			return nil, err
		}
		assocs = append(assocs, assoc)
	}
	if err = rows.Err(); err != nil {
		return nil, queryError(err, "reading child associations failed")
	}
	return assocs, nil
}

func (s *Store) nodeRef(id string) repository.NodeRef {
	return repository.NodeRef{Store: s.ref, ID: id}
}

func encodeProperties(props map[qname.QName]repository.Value) (string, error) {
	encoded := make(map[string]repository.Value, len(props))
	for name, value := range props {
		encoded[name.String()] = value
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return "", errors.Wrap(err, class.RepositoryConnectionQuery, "encoding properties failed")
	}
	return string(data), nil
}

func decodeProperties(data []byte) (map[qname.QName]repository.Value, error) {
	encoded := map[string]repository.Value{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &encoded); err != nil {
			return nil, errors.Wrap(err, class.RepositoryConnectionQuery, "decoding properties failed")
		}
	}
	props := make(map[qname.QName]repository.Value, len(encoded))
	for key, value := range encoded {
		name, err := parseName(key)
		if err != nil {
			return nil, err
		}
		props[name] = value
	}
	return props, nil
}

func parseName(s string) (qname.QName, error) {
	if s == "" {
		return qname.QName{}, nil
	}
	name, err := qname.Parse(s, nil)
	if err != nil {
		return name, errors.Wrapf(err, class.RepositoryConnectionQuery, "stored name: '%s' is not valid", s)
	}
	return name, nil
}

func notFound(ref repository.NodeRef) error {
	return errors.Newf(class.RepositoryNodeNotFound, "node: '%s' not found", ref)
}

func queryError(err error, message string) error {
	return errors.Wrap(err, class.RepositoryConnectionQuery, message)
}
