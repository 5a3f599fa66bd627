package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/neuronlabs/viewimport/config"
	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/repository"
	"github.com/neuronlabs/viewimport/repository/mocks"
)

// TestNodeRef tests parsing and formatting the references.
func TestNodeRef(t *testing.T) {
	ref, err := repository.ParseNodeRef("workspace://SpacesStore/8f2a")
	require.NoError(t, err)
	assert.Equal(t, repository.StoreRef{Protocol: "workspace", Identifier: "SpacesStore"}, ref.Store)
	assert.Equal(t, "8f2a", ref.ID)
	assert.Equal(t, "workspace://SpacesStore/8f2a", ref.String())

	for _, invalid := range []string{"", "8f2a", "workspace://SpacesStore", "workspace://SpacesStore/", "://x/id"} {
		_, err = repository.ParseNodeRef(invalid)
		assert.True(t, errors.IsClass(err, class.RepositoryNodeInvalidRef), invalid)
	}

	store, err := repository.ParseStoreRef("archive://SpacesStore")
	require.NoError(t, err)
	assert.Equal(t, "archive", store.Protocol)

	assert.True(t, repository.NodeRef{}.IsZero())
	assert.Equal(t, "", repository.NodeRef{}.String())
}

// TestValue tests the property values.
func TestValue(t *testing.T) {
	t.Run("Append", func(t *testing.T) {
		v := repository.Scalar("a")
		assert.False(t, v.IsCollection())

		c := v.Append(repository.Scalar("b"))
		assert.True(t, c.IsCollection())
		assert.Equal(t, []string{"a", "b"}, c.Strings())

		c2 := c.Append(repository.Null())
		assert.Len(t, c.Items, 2)
		assert.Len(t, c2.Items, 3)
		assert.Equal(t, "[a, b, <null>]", c2.String())
	})

	t.Run("MLText", func(t *testing.T) {
		ml := repository.MLText{}.With(language.English, "Title").With(language.German, "Titel").With(language.English, "The Title")
		require.Len(t, ml, 2)

		text, ok := ml.Get(language.English)
		require.True(t, ok)
		assert.Equal(t, "The Title", text)

		text, ok = ml.Closest(language.MustParse("de-AT"))
		require.True(t, ok)
		assert.Equal(t, "Titel", text)
	})

	t.Run("JSON", func(t *testing.T) {
		values := []repository.Value{
			repository.Scalar("hello"),
			repository.Null(),
			repository.Collection(repository.Scalar("a"), repository.Scalar("b")),
			repository.ML(repository.MLText{}.With(language.French, "bonjour")),
		}
		for _, v := range values {
			data, err := json.Marshal(v)
			require.NoError(t, err)

			var decoded repository.Value
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, v.String(), decoded.String())
			assert.Equal(t, v.Kind, decoded.Kind)
		}
	})
}

// TestAccessControlEntry tests creating the entries.
func TestAccessControlEntry(t *testing.T) {
	ace := repository.NewAccessControlEntry(repository.Denied, "GROUP_X", "Write", "")
	assert.Equal(t, repository.AccessControlEntry{Status: repository.Denied, Authority: "GROUP_X", Permission: "Write"}, ace)

	ace = repository.NewAccessControlEntry(repository.Allowed, "guest", "guest", "")
	assert.Equal(t, repository.DefaultConsumerPermission, ace.Permission)
	assert.Equal(t, "guest", ace.Authority)

	ace = repository.NewAccessControlEntry(repository.Allowed, "GROUP_X", "guest", "Reader")
	assert.Equal(t, "Reader", ace.Permission)

	status, err := repository.ParseAccessStatus("DENIED")
	require.NoError(t, err)
	assert.Equal(t, repository.Denied, status)

	_, err = repository.ParseAccessStatus("denied")
	assert.True(t, errors.IsClass(err, class.ImportMalformedValue))
}

// TestFactory tests the factory registry.
func TestFactory(t *testing.T) {
	f := &mocks.Factory{Name: "testing-mock"}
	require.NoError(t, repository.RegisterFactory(f))

	err := repository.RegisterFactory(&mocks.Factory{Name: "testing-mock"})
	assert.True(t, errors.IsClass(err, class.RepositoryFactoryAlreadyRegistered))
	assert.Contains(t, repository.Drivers(), "testing-mock")

	store := &mocks.Store{}
	cfg := &config.Repository{Driver: "testing-mock"}
	f.On("New", mock.Anything, cfg).Return(store, nil).Once()

	s, err := repository.Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, store, s)
	f.AssertExpectations(t)

	_, err = repository.Open(context.Background(), &config.Repository{Driver: "unknown"})
	assert.True(t, errors.IsClass(err, class.RepositoryFactoryNotFound))
}
