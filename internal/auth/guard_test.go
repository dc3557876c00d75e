package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func decodeErrorCode(rec *httptest.ResponseRecorder) internal.ErrorCode {
	var body struct {
		Error struct {
			Code internal.ErrorCode `json:"code"`
		} `json:"error"`
	}
	gomega.Expect(json.NewDecoder(rec.Body).Decode(&body)).To(gomega.Succeed())
	return body.Error.Code
}

var _ = ginkgo.Describe("Guard", func() {
	var (
		tokenGen *JWTTokenGenerator
		guard    *Guard
		seen     *internal.Identity
		next     http.Handler
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("guard-secret-0123456789", time.Hour)
		guard = NewGuard(NewService(nil, tokenGen, nil), nil)
		seen = nil
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = internal.IdentityFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	})

	tokenFor := func(id int64, role internal.Role) string {
		token, _, err := tokenGen.GenerateAccessToken(id, role)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	serve := func(capability Capability, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/any", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		guard.Require(capability)(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Describe("Authorize", func() {
		ginkgo.It("should return 401 when no credential is presented", func() {
			_, appErr := guard.Authorize("")
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 401 for a non bearer scheme", func() {
			_, appErr := guard.Authorize("Basic Zm9vOmJhcg==")
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 403 for a credential that fails verification", func() {
			_, appErr := guard.Authorize("Bearer forged.token.value")
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidToken))
		})

		ginkgo.It("should return 403 for an expired credential", func() {
			tokenGen.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
			token := tokenFor(1, internal.RoleDriver)
			tokenGen.now = time.Now

			_, appErr := guard.Authorize("Bearer " + token)
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeTokenExpired))
		})

		ginkgo.It("should accept a lower case scheme", func() {
			identity, appErr := guard.Authorize("bearer " + tokenFor(7, internal.RoleDriver))
			gomega.Expect(appErr).To(gomega.BeNil())
			gomega.Expect(identity.UserID).To(gomega.Equal(int64(7)))
		})
	})

	ginkgo.Describe("Require", func() {
		ginkgo.It("should let public routes through without a credential", func() {
			rec := serve(CapabilityPublic, "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(seen).To(gomega.BeNil())
		})

		ginkgo.It("should attach the identity for authenticated routes", func() {
			rec := serve(CapabilityAuthenticated, "Bearer "+tokenFor(5, internal.RoleDriver))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(seen).To(gomega.Equal(&internal.Identity{UserID: 5, Role: internal.RoleDriver}))
		})

		ginkgo.It("should answer 401 with a JSON error when the credential is missing", func() {
			rec := serve(CapabilityAuthenticated, "")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(internal.ErrCodeMissingToken))
		})

		ginkgo.It("should answer 403 when a driver calls an admin route", func() {
			rec := serve(CapabilityAdmin, "Bearer "+tokenFor(5, internal.RoleDriver))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(decodeErrorCode(rec)).To(gomega.Equal(internal.ErrCodeInsufficientRole))
			gomega.Expect(seen).To(gomega.BeNil())
		})

		ginkgo.It("should admit an admin to an admin route", func() {
			rec := serve(CapabilityAdmin, "Bearer "+tokenFor(9, internal.RoleAdmin))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(seen.IsAdmin()).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("Policy", func() {
	ginkgo.It("should carry the default table", func() {
		policy, err := NewPolicy(nil)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(policy.For("/login")).To(gomega.Equal(CapabilityPublic))
		gomega.Expect(policy.For("/add-shift")).To(gomega.Equal(CapabilityAuthenticated))
		gomega.Expect(policy.For("/shifts/{user_id}")).To(gomega.Equal(CapabilityAuthenticated))
		gomega.Expect(policy.For("/export")).To(gomega.Equal(CapabilityAdmin))
	})

	ginkgo.It("should require a credential for unlisted routes", func() {
		policy, _ := NewPolicy(nil)
		gomega.Expect(policy.For("/somewhere")).To(gomega.Equal(CapabilityAuthenticated))
	})

	ginkgo.It("should apply overrides", func() {
		policy, err := NewPolicy(map[string]string{"/add-shift": "public", "/shifts/{user_id}": "admin"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(policy.For("/add-shift")).To(gomega.Equal(CapabilityPublic))
		gomega.Expect(policy.For("/shifts/{user_id}")).To(gomega.Equal(CapabilityAdmin))
		gomega.Expect(policy.For("/export")).To(gomega.Equal(CapabilityAdmin))
	})

	ginkgo.It("should reject an unknown capability", func() {
		_, err := NewPolicy(map[string]string{"/export": "superuser"})
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})

var _ = ginkgo.Describe("OwnershipPolicy", func() {
	driverCtx := func(id int64) context.Context {
		return internal.ContextWithIdentity(context.Background(), &internal.Identity{UserID: id, Role: internal.RoleDriver})
	}

	ginkgo.It("should allow a driver to act on their own records", func() {
		gomega.Expect(NewOwnershipPolicy(true).CheckOwner(driverCtx(4), 4)).To(gomega.BeNil())
	})

	ginkgo.It("should stop a driver acting for someone else", func() {
		appErr := NewOwnershipPolicy(true).CheckOwner(driverCtx(4), 5)
		gomega.Expect(appErr).ToNot(gomega.BeNil())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusForbidden))
	})

	ginkgo.It("should let admins act for anyone", func() {
		ctx := internal.ContextWithIdentity(context.Background(), &internal.Identity{UserID: 1, Role: internal.RoleAdmin})
		gomega.Expect(NewOwnershipPolicy(true).CheckOwner(ctx, 99)).To(gomega.BeNil())
	})

	ginkgo.It("should skip the check when disabled", func() {
		gomega.Expect(NewOwnershipPolicy(false).CheckOwner(driverCtx(4), 5)).To(gomega.BeNil())
	})

	ginkgo.It("should skip the check without an identity", func() {
		gomega.Expect(NewOwnershipPolicy(true).CheckOwner(context.Background(), 5)).To(gomega.BeNil())
	})
})
