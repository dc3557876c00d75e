package internal

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FlexString", func() {
	decode := func(body string) (FlexString, error) {
		var v struct {
			ID FlexString `json:"id"`
		}
		err := json.Unmarshal([]byte(body), &v)
		return v.ID, err
	}

	It("keeps strings as they are", func() {
		got, err := decode(`{"id":"A1"}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(FlexString("A1")))
	})

	It("renders numbers in their literal form", func() {
		got, err := decode(`{"id": 12345}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(FlexString("12345")))

		got, err = decode(`{"id": 7.50}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(FlexString("7.50")))
	})

	It("treats null as empty", func() {
		got, err := decode(`{"id": null}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeEmpty())
	})

	It("rejects other JSON values", func() {
		_, err := decode(`{"id": true}`)
		Expect(err).To(HaveOccurred())
	})
})
