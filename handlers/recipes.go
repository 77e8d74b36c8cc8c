package handlers

import (
	"net/http"

	"recipes_backend/logger"
	"recipes_backend/models"
	"recipes_backend/store"

	"github.com/gorilla/mux"
)

func Hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello World"))
}

// GetRecipes returns every recipe in the collection.
func GetRecipes(st store.Store, w http.ResponseWriter, r *http.Request) {
	listRecipes(st, w, r, store.Filter{})
}

// GetRecipesByCuisine filters by the "cuisine" query parameter. A missing
// parameter or the value "All" disables the filter.
func GetRecipesByCuisine(st store.Store, w http.ResponseWriter, r *http.Request) {
	filter := store.Filter{}
	if cuisine := r.URL.Query().Get(models.CuisineField); cuisine != "" && cuisine != models.AllCuisines {
		filter[models.CuisineField] = cuisine
	}
	listRecipes(st, w, r, filter)
}

// GetMyRecipes returns the recipes owned by the "userEmail" query parameter.
func GetMyRecipes(st store.Store, w http.ResponseWriter, r *http.Request) {
	userEmail := r.URL.Query().Get(models.UserEmailField)
	if userEmail == "" {
		writeMessage(w, r, http.StatusBadRequest, "Missing 'userEmail' query parameter")
		return
	}
	listRecipes(st, w, r, store.Filter{models.UserEmailField: userEmail})
}

func listRecipes(st store.Store, w http.ResponseWriter, r *http.Request, filter store.Filter) {
	recipes, err := st.FindAll(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, "Failed to fetch recipes", err)
		return
	}

	// Ensure an empty result encodes as [] rather than null
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	writeJSON(w, r, http.StatusOK, recipes)
}

// GetRecipe returns a single recipe. An absent recipe yields 200 with an
// empty body.
func GetRecipe(st store.Store, w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDFromPath(st, w, r)
	if !ok {
		return
	}

	recipe, err := st.FindOne(r.Context(), recipeID)
	if err != nil {
		writeStoreError(w, r, "Failed to retrieve recipe", err)
		return
	}
	if recipe == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, r, http.StatusOK, recipe)
}

// CreateRecipe inserts the request body verbatim and acknowledges the new id.
func CreateRecipe(st store.Store, w http.ResponseWriter, r *http.Request) {
	recipe, err := decodeRecipe(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	id, err := st.InsertOne(r.Context(), recipe)
	if err != nil {
		writeStoreError(w, r, "Failed to create recipe", err)
		return
	}
	logger.FromContext(r.Context()).WithField("recipeID", id).Debug("Created recipe")
	writeJSON(w, r, http.StatusOK, models.InsertResult{Acknowledged: true, InsertedID: id})
}

// UpdateRecipe sets the fields present in the body and leaves all others
// untouched.
func UpdateRecipe(st store.Store, w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDFromPath(st, w, r)
	if !ok {
		return
	}

	fields, err := decodeRecipe(w, r)
	if err != nil {
		writeDecodeError(w, r, err)
		return
	}

	modified, err := st.UpdateOne(r.Context(), recipeID, fields)
	if err != nil {
		writeStoreError(w, r, "Failed to update recipe", err)
		return
	}
	if modified == 0 {
		writeMessage(w, r, http.StatusNotFound, "Recipe not found or no changes made")
		return
	}
	writeMessage(w, r, http.StatusOK, "Recipe updated successfully")
}

func DeleteRecipe(st store.Store, w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDFromPath(st, w, r)
	if !ok {
		return
	}

	deleted, err := st.DeleteOne(r.Context(), recipeID)
	if err != nil {
		writeStoreError(w, r, "Failed to delete recipe", err)
		return
	}
	if deleted == 0 {
		writeMessage(w, r, http.StatusNotFound, "Recipe not found")
		return
	}
	writeMessage(w, r, http.StatusOK, "Recipe deleted successfully")
}

// LikeRecipe atomically increments the like count of a recipe by one.
func LikeRecipe(st store.Store, w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDFromPath(st, w, r)
	if !ok {
		return
	}

	modified, err := st.IncrementField(r.Context(), recipeID, models.LikeCountField, 1)
	if err != nil {
		writeStoreError(w, r, "Failed to update like count", err)
		return
	}
	if modified == 0 {
		writeMessage(w, r, http.StatusNotFound, "Recipe not found or no changes made")
		return
	}
	writeMessage(w, r, http.StatusOK, "Like count updated")
}

// recipeIDFromPath extracts the {id} path parameter and answers 400 when it is
// not a valid store identifier.
func recipeIDFromPath(st store.Store, w http.ResponseWriter, r *http.Request) (string, bool) {
	recipeID := mux.Vars(r)["id"]
	if !st.ValidID(recipeID) {
		writeMessage(w, r, http.StatusBadRequest, "Invalid recipe id")
		return "", false
	}
	return recipeID, true
}
