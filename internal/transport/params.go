package transport

import (
	"net/http"
	"strconv"

	"github.com/raihanuddin561/skyzonebd-sub000/internal/cart"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/pricing"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/user"
	"github.com/raihanuddin561/skyzonebd-sub000/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func paginationParams(r *http.Request) (limit, offset int32) {
	limit = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 1 {
		offset = (int32(v) - 1) * limit
	}
	return limit, offset
}

func idParam(r *http.Request, name string) (uint, error) {
	return utils.ToUint(chi.URLParam(r, name))
}

// callerClass derives the customer class from the authenticated user's type
// claim; unauthenticated callers buy at guest terms.
func callerClass(r *http.Request) pricing.CustomerClass {
	return pricing.ClassForUserType(user.UserType(utils.GetUserTypeFromContext(r.Context())))
}

// cartOwner resolves whose cart a request touches: the authenticated user,
// or the guest session from the X-Cart-Session header. When a guest has no
// session yet one is minted and echoed back in the response header.
func cartOwner(w http.ResponseWriter, r *http.Request) (cart.Owner, error) {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return cart.Owner{UserID: &id}, nil
	}

	raw := r.Header.Get("X-Cart-Session")
	if raw == "" {
		sessionID := uuid.New()
		w.Header().Set("X-Cart-Session", sessionID.String())
		return cart.Owner{SessionID: &sessionID}, nil
	}

	sessionID, err := uuid.Parse(raw)
	if err != nil {
		return cart.Owner{}, cart.ErrInvalidOwner
	}
	return cart.Owner{SessionID: &sessionID}, nil
}
