package physio_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cropviz/internal/physio"
)

var _ = Describe("formula properties", func() {
	Describe("growth respiration", func() {
		DescribeTable("is homogeneous in GTW",
			func(gtw, m, k float64) {
				Expect(physio.GrowthRespiration(k*gtw, m)).To(BeNumerically("~", k*physio.GrowthRespiration(gtw, m), 1e-12))
			},
			Entry("doubling", 12.0, 0.25, 2.0),
			Entry("tenfold", 3.0, 0.30, 10.0),
			Entry("zero scale", 7.5, 0.35, 0.0),
		)

		It("vanishes without assimilate", func() {
			for _, m := range []float64{0.20, 0.25, 0.30, 0.35} {
				Expect(physio.GrowthRespiration(0, m)).To(BeZero())
			}
		})
	})

	Describe("maintenance respiration", func() {
		It("equals the dot product of weights and coefficients", func() {
			w := []float64{150, 160, 100, 300}
			r := []float64{0.015, 0.010, 0.012, 0.008}
			got, err := physio.MaintenanceRespiration(w, r)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNumerically("~", 150*0.015+160*0.010+100*0.012+300*0.008, 1e-12))
		})

		It("rejects unequal lengths without a partial result", func() {
			got, err := physio.MaintenanceRespiration([]float64{1}, []float64{1, 2})
			Expect(err).To(MatchError(physio.ErrDimensionMismatch))
			Expect(got).To(BeZero())
		})
	})

	Describe("net photosynthesis", func() {
		It("equals carboxylation when there are no losses", func() {
			for _, vc := range []float64{0, 12.5, 80, 100} {
				Expect(physio.NetPhotosynthesis(vc, 0, 0)).To(Equal(vc))
			}
		})
	})

	Describe("nitrogen scaling", func() {
		It("is the identity at the reference content", func() {
			for _, nRef := range []float64{1.5, 2.0, 3.0, 4.0} {
				Expect(physio.NitrogenCoefficient(nRef, 0.012, nRef)).To(Equal(0.012))
			}
		})
	})

	Describe("temperature response", func() {
		DescribeTable("scales by exactly Q10 per 10 degrees",
			func(rm0, q10, t0 float64) {
				Expect(physio.TemperatureRespiration(t0, rm0, q10, t0)).To(Equal(rm0))
				Expect(physio.TemperatureRespiration(t0+10, rm0, q10, t0)).To(BeNumerically("~", rm0*q10, 1e-12))
			},
			Entry("typical crop", 5.0, 2.0, 25.0),
			Entry("cold reference", 1.2, 3.5, 10.0),
			Entry("weak response", 8.0, 1.2, 20.0),
		)

		It("stays positive for positive inputs", func() {
			for temp := 0.0; temp <= 40; temp += 2.5 {
				Expect(physio.TemperatureRespiration(temp, 5, 1.5, 25)).To(BeNumerically(">", 0))
			}
		})
	})

	Describe("rubisco respiration", func() {
		k := physio.RubiscoConstants{Rpmax: 20, Ks: 2.5, Kc: 40, Ko: 25}

		It("has a finite positive limit as CO2 approaches zero", func() {
			o2 := physio.O2FromPercent(30)
			v := physio.RubiscoRp(math.SmallestNonzeroFloat64, o2, k)
			Expect(math.IsInf(v, 0) || math.IsNaN(v)).To(BeFalse())
			Expect(v).To(BeNumerically("~", k.Rpmax*(o2/k.Ks)/(1+o2/k.Ko), 1e-9))
		})

		It("builds a 100x100 surface", func() {
			co2 := make([]float64, 100)
			o2 := make([]float64, 100)
			for i := range co2 {
				co2[i] = 1 + float64(i)*9.99
				o2[i] = 5 + float64(i)*45.0/99
			}
			s := physio.RubiscoSurface(co2, o2, k)
			c, r := s.Dims()
			Expect(c * r).To(Equal(10000))
		})
	})
})
