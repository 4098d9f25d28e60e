package mainmemory

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/mem"
)

var _ = Describe("Builder", func() {
	It("should build a memory of the requested size", func() {
		memory, err := MakeBuilder().WithSize(64).Build()

		Expect(err).ToNot(HaveOccurred())
		Expect(memory.SizeInBytes()).To(Equal(uint32(64)))
	})

	It("should reject a size that is not a multiple of the line size",
		func() {
			memory, err := MakeBuilder().WithSize(100).Build()

			var configErr *mem.ConfigError
			Expect(memory).To(BeNil())
			Expect(errors.As(err, &configErr)).To(BeTrue())
			Expect(configErr.SizeInBytes).To(Equal(uint32(100)))
		})

	It("should reject a zero size", func() {
		_, err := MakeBuilder().WithSize(0).Build()

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Comp", func() {
	var memory *Comp

	BeforeEach(func() {
		var err error
		memory, err = MakeBuilder().WithSize(128).Build()
		Expect(err).ToNot(HaveOccurred())
	})

	It("should start zero filled", func() {
		var readData mem.Line

		Expect(memory.Access(0, mem.Line{}, mem.ReadEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(mem.Line{}))
	})

	It("should write and read back a line", func() {
		line := mem.Line{1, 2, 3, 4, 5, 6, 7, 8}

		Expect(memory.Access(32, line, mem.WriteEnable, nil)).To(Succeed())

		var readData mem.Line
		Expect(memory.Access(32, mem.Line{}, mem.ReadEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(line))
	})

	It("should serve the line containing a mid-line address", func() {
		line := mem.Line{1, 2, 3, 4, 5, 6, 7, 8}
		Expect(memory.Access(64, line, mem.WriteEnable, nil)).To(Succeed())

		var readData mem.Line
		Expect(memory.Access(64+20, mem.Line{}, mem.ReadEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(line))
	})

	It("should read the pre-write line when reading and writing", func() {
		oldLine := mem.Line{1, 1, 1, 1, 1, 1, 1, 1}
		newLine := mem.Line{2, 2, 2, 2, 2, 2, 2, 2}
		Expect(memory.Access(0, oldLine, mem.WriteEnable, nil)).To(Succeed())

		var readData mem.Line
		Expect(memory.Access(0, newLine, mem.ReadEnable|mem.WriteEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(oldLine))

		Expect(memory.Access(0, mem.Line{}, mem.ReadEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(newLine))
	})

	It("should reject an address exactly at the memory size", func() {
		err := memory.Access(128, mem.Line{}, mem.ReadEnable, nil)

		var outOfRange *mem.OutOfRangeError
		Expect(errors.As(err, &outOfRange)).To(BeTrue())
		Expect(outOfRange.Address).To(Equal(uint32(128)))
		Expect(outOfRange.SizeInBytes).To(Equal(uint32(128)))
	})

	It("should reject an address beyond the memory size", func() {
		err := memory.Access(0xffffffff, mem.Line{}, mem.WriteEnable, nil)

		Expect(err).To(HaveOccurred())
	})

	It("should zero the contents on reset", func() {
		Expect(memory.Access(0, mem.Line{9, 9, 9, 9, 9, 9, 9, 9},
			mem.WriteEnable, nil)).To(Succeed())

		memory.Reset()

		var readData mem.Line
		Expect(memory.Access(0, mem.Line{}, mem.ReadEnable,
			&readData)).To(Succeed())
		Expect(readData).To(Equal(mem.Line{}))
	})
})
